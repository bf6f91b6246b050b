package view

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"profilehub/internal/domain/derive"
	"profilehub/internal/domain/payload"
)

func TestNormalize(t *testing.T) {
	Convey("Given arbitrary view input", t, func() {
		Convey("Known identifiers pass through", func() {
			for _, id := range All() {
				So(Normalize(string(id)), ShouldEqual, id)
			}
		})

		Convey("Unknown input falls back to welcome", func() {
			So(Normalize("bogus"), ShouldEqual, Welcome)
			So(Normalize(""), ShouldEqual, Welcome)
			So(Normalize("XP"), ShouldEqual, Welcome)
		})

		Convey("Surrounding whitespace is tolerated", func() {
			So(Normalize("  projects "), ShouldEqual, Projects)
		})
	})
}

func TestMachine(t *testing.T) {
	Convey("Given a view machine", t, func() {
		m := NewMachine("")

		Convey("It starts at welcome", func() {
			So(m.Selected(), ShouldEqual, Welcome)
		})

		Convey("Selecting a known view activates exactly that view", func() {
			So(m.Select("projects"), ShouldEqual, Projects)
			So(m.Selected(), ShouldEqual, Projects)
		})

		Convey("Selecting an unknown view lands on welcome", func() {
			m.Select("stats")
			So(m.Select("nope"), ShouldEqual, Welcome)
			So(m.Selected(), ShouldEqual, Welcome)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given a renderer registry", t, func() {
		r := NewRegistry(derive.New())
		agg := 2048.0
		user := &payload.User{
			Login:     "alice",
			ID:        "42",
			FirstName: "Alice",
			LastName:  "Doe",
			Email:     "alice@example.com",
			TotalUp:   1500,
			TotalDown: 500,
			Transactions: []payload.Transaction{
				{Amount: 100, Path: "/bahrain/bh-module/go-reloaded", CreatedAt: "2024-05-01T10:00:00Z", Type: "xp"},
				{Amount: 50, Path: "/bahrain/bh-module/ascii-art", CreatedAt: "2024-06-01T10:00:00Z", Type: "xp"},
			},
			TopTransactions: []payload.Transaction{
				{Amount: 100, Path: "/bahrain/bh-module/go-reloaded", CreatedAt: "2024-05-01T10:00:00Z", Type: "xp"},
			},
			TopSkills: []payload.Transaction{
				{Amount: 40, Type: "skill_go"},
				{Amount: 30, Type: "skill_back_end"},
			},
			AggregateSum: &agg,
		}

		Convey("Welcome renders identity fields and the total", func() {
			res := r.Render(Welcome, user)
			So(res.View, ShouldEqual, "welcome")
			So(res.Welcome, ShouldNotBeNil)
			So(res.Audit, ShouldBeNil)
			So(res.List, ShouldBeNil)
			So(res.Skills, ShouldBeNil)
			So(res.Welcome.Username, ShouldEqual, "alice")
			So(res.Welcome.FullName, ShouldEqual, "Alice Doe")
			So(res.Welcome.TotalXPFormatted, ShouldEqual, "2.00 KB")
		})

		Convey("Welcome falls back to placeholders for a nil record", func() {
			res := r.Render(Welcome, nil)
			So(res.Welcome.Username, ShouldEqual, "User")
			So(res.Welcome.ID, ShouldEqual, "N/A")
			So(res.Welcome.FullName, ShouldEqual, "N/A")
			So(res.Welcome.TotalXPFormatted, ShouldEqual, "0 XP")
		})

		Convey("Activity renders the audit ratio", func() {
			res := r.Render(Activity, user)
			So(res.Audit, ShouldNotBeNil)
			So(res.Audit.Ratio, ShouldNotBeNil)
			So(*res.Audit.Ratio, ShouldEqual, 3.0)
			So(res.Audit.RatioFormatted, ShouldEqual, "3.0")
			So(res.Audit.Empty, ShouldBeFalse)
			So(len(res.Audit.Series), ShouldEqual, 2)
		})

		Convey("Activity with no audits shows a placeholder, not zero", func() {
			res := r.Render(Activity, &payload.User{})
			So(res.Audit.Ratio, ShouldBeNil)
			So(res.Audit.RatioFormatted, ShouldEqual, "N/A")
			So(res.Audit.Empty, ShouldBeTrue)
			So(res.Audit.Series, ShouldBeEmpty)
		})

		Convey("XP renders the pre-ranked list with display names", func() {
			res := r.Render(XP, user)
			So(res.List, ShouldNotBeNil)
			So(len(res.List.Rows), ShouldEqual, 1)
			So(res.List.Rows[0].DisplayName, ShouldEqual, "go-reloaded")
			So(res.List.TotalXPFormatted, ShouldEqual, "2.00 KB")
		})

		Convey("Projects renders aggregated skills", func() {
			res := r.Render(Projects, user)
			So(res.Skills, ShouldNotBeNil)
			So(len(res.Skills.Skills), ShouldEqual, 2)
			So(res.Skills.Skills[0].Key, ShouldEqual, "go")
		})

		Convey("Stats renders recent transactions newest first", func() {
			res := r.Render(Stats, user)
			So(res.List, ShouldNotBeNil)
			So(len(res.List.Rows), ShouldEqual, 2)
			So(res.List.Rows[0].DisplayName, ShouldEqual, "ascii-art")
		})

		Convey("Every view renders an empty state for a nil record", func() {
			for _, id := range All() {
				res := r.Render(id, nil)
				So(res.View, ShouldEqual, string(id))
			}
		})

		Convey("Unknown identifiers render the welcome view", func() {
			res := r.Render(ID("mystery"), user)
			So(res.View, ShouldEqual, "welcome")
		})
	})
}
