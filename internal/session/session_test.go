package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"profilehub/internal/session"
)

func TestRegistryBasics(t *testing.T) {
	Convey("Given an in-memory session registry", t, func() {
		ctx := context.Background()
		r := session.NewInMemoryRegistry()

		Convey("Create returns a retrievable session", func() {
			s := r.Create(ctx, "alice", "token-a")
			So(s.ID, ShouldNotBeEmpty)
			So(s.Login, ShouldEqual, "alice")
			So(s.Token, ShouldEqual, "token-a")

			got, ok := r.Get(ctx, s.ID)
			So(ok, ShouldBeTrue)
			So(got.Token, ShouldEqual, "token-a")
			So(r.Len(), ShouldEqual, 1)
		})

		Convey("Get on an unknown id reports absence", func() {
			_, ok := r.Get(ctx, "missing")
			So(ok, ShouldBeFalse)
		})

		Convey("Distinct sessions receive distinct ids", func() {
			a := r.Create(ctx, "alice", "t1")
			b := r.Create(ctx, "alice", "t2")
			So(a.ID, ShouldNotEqual, b.ID)
			So(r.Len(), ShouldEqual, 2)
		})

		Convey("SetView updates the stored selection", func() {
			s := r.Create(ctx, "alice", "t")
			So(r.SetView(ctx, s.ID, "projects"), ShouldBeTrue)
			got, _ := r.Get(ctx, s.ID)
			So(got.View, ShouldEqual, "projects")

			So(r.SetView(ctx, "missing", "xp"), ShouldBeFalse)
		})

		Convey("Delete removes the session and is idempotent", func() {
			s := r.Create(ctx, "alice", "t")
			r.Delete(ctx, s.ID)
			_, ok := r.Get(ctx, s.ID)
			So(ok, ShouldBeFalse)
			So(r.Len(), ShouldEqual, 0)

			r.Delete(ctx, s.ID)
			So(r.Len(), ShouldEqual, 0)
		})
	})
}

func TestRegistryEviction(t *testing.T) {
	Convey("Given a bounded registry", t, func() {
		ctx := context.Background()
		r := session.NewInMemoryRegistry(session.WithCapacity(3))

		Convey("The oldest session is evicted at capacity", func() {
			first := r.Create(ctx, "u", "t0")
			r.Create(ctx, "u", "t1")
			r.Create(ctx, "u", "t2")
			So(r.Len(), ShouldEqual, 3)

			r.Create(ctx, "u", "t3")
			So(r.Len(), ShouldEqual, 3)
			_, ok := r.Get(ctx, first.ID)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given an unbounded registry", t, func() {
		ctx := context.Background()
		r := session.NewInMemoryRegistry(session.WithCapacity(0))

		Convey("No eviction occurs", func() {
			var ids []string
			for i := 0; i < 50; i++ {
				ids = append(ids, r.Create(ctx, "u", fmt.Sprintf("t%d", i)).ID)
			}
			So(r.Len(), ShouldEqual, 50)
			for _, id := range ids {
				_, ok := r.Get(ctx, id)
				So(ok, ShouldBeTrue)
			}
		})
	})
}

func TestRegistryConcurrency(t *testing.T) {
	Convey("Given concurrent creators and deleters", t, func() {
		ctx := context.Background()
		r := session.NewInMemoryRegistry(session.WithCapacity(100))

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					s := r.Create(ctx, "u", "t")
					if i%2 == 0 {
						r.Delete(ctx, s.ID)
					}
				}
			}()
		}
		wg.Wait()

		Convey("The registry stays within capacity", func() {
			So(r.Len(), ShouldBeLessThanOrEqualTo, 100)
			So(r.Len(), ShouldBeGreaterThanOrEqualTo, 0)
		})
	})
}
