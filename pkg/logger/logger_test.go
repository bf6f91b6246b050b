package logger

import (
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSetLevelString(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("When setting known levels", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			So(levelVar.Level(), ShouldEqual, slog.LevelDebug)

			So(SetLevelString("WARN"), ShouldBeNil)
			So(levelVar.Level(), ShouldEqual, slog.LevelWarn)

			So(SetLevelString("warning"), ShouldBeNil)
			So(levelVar.Level(), ShouldEqual, slog.LevelWarn)

			So(SetLevelString(""), ShouldBeNil)
			So(levelVar.Level(), ShouldEqual, slog.LevelInfo)
		})

		Convey("When setting an unknown level", func() {
			So(SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}

func TestNamed(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(Init(WithJSON()), ShouldBeNil)

		Convey("Named returns a distinct logger", func() {
			named := Named("transport")
			So(named, ShouldNotBeNil)
			So(named, ShouldNotEqual, Get())
		})
	})
}
