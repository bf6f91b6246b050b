package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerRegistration(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		reg := prometheus.NewRegistry()

		Convey("When creating a manager against it", func() {
			m := NewManager(WithRegistry(reg), WithNamespace("test"), WithSubsystem("suite"))
			So(m, ShouldNotBeNil)

			Convey("Then all collectors gather without conflicts", func() {
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				// Counters with zero observations do not gather; touch a few.
				m.loginsTotal.Inc()
				m.viewRenders.WithLabelValues("welcome").Inc()
				m.activeSessions.Set(1)
				families, err = reg.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Recording functions do not panic and mutate counters", func() {
			So(func() {
				RecordLogin()
				RecordLoginFailure()
				RecordSessionExpired()
				RecordUpstreamFetch()
				RecordUpstreamFetchError()
				RecordUpstreamFetchLatency(12.5)
				RecordViewRender("projects")
				RecordDeriveLatency(0.3)
				RecordHTTPRequest("login", "POST", "200")
				RecordHTTPRequestDuration("login", "POST", "200", 4.2)
				RecordErrorByComponent("transport", "timeout")
				UpdateActiveSessions(3)
				UpdateSnapshotCount(3)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)

			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
