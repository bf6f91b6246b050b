package fixture

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"profilehub/internal/domain/payload"
)

func TestUserPayload(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		g := New(WithSeed(42), WithNow(now), WithLogin("alice"))

		Convey("The payload extracts into a populated record", func() {
			var raw payload.Raw
			So(json.Unmarshal(g.UserPayload(), &raw), ShouldBeNil)

			u := payload.ExtractUser(raw)
			So(u, ShouldNotBeNil)
			So(u.Login, ShouldEqual, "alice")
			So(u.Email, ShouldEqual, "alice@example.com")
			So(len(u.Transactions), ShouldEqual, 25)
			So(len(u.TopTransactions), ShouldEqual, 10)
			So(len(u.TopSkills), ShouldEqual, 14)
			So(u.TotalUp, ShouldBeGreaterThan, 0)
		})

		Convey("Top transactions are ordered by amount descending", func() {
			var raw payload.Raw
			So(json.Unmarshal(g.UserPayload(), &raw), ShouldBeNil)

			u := payload.ExtractUser(raw)
			for i := 1; i < len(u.TopTransactions); i++ {
				So(u.TopTransactions[i].Amount, ShouldBeLessThanOrEqualTo, u.TopTransactions[i-1].Amount)
			}
		})

		Convey("Timestamps parse as RFC3339", func() {
			var raw payload.Raw
			So(json.Unmarshal(g.UserPayload(), &raw), ShouldBeNil)

			u := payload.ExtractUser(raw)
			for _, tx := range u.Transactions {
				So(tx.CreatedTime().IsZero(), ShouldBeFalse)
			}
		})

		Convey("The same seed yields the same payload", func() {
			a := New(WithSeed(7), WithNow(now)).UserPayload()
			b := New(WithSeed(7), WithNow(now)).UserPayload()
			So(string(a), ShouldEqual, string(b))
		})
	})
}

func TestEmptyPayload(t *testing.T) {
	Convey("Given the empty sentinel payload", t, func() {
		g := New()

		Convey("It decodes as the empty dataset", func() {
			var raw payload.Raw
			So(json.Unmarshal(g.EmptyPayload(), &raw), ShouldBeNil)
			So(raw.Empty(), ShouldBeTrue)
			So(payload.ExtractUser(raw), ShouldBeNil)
		})
	})
}
