package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom naming", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithPrometheusRegistry(registry),
			)
			m.stageChanges.WithLabelValues("hired").Inc()

			Convey("Then collectors are registered under that naming", func() {
				So(m, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_unit_stage_changes_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "talentdesk")
				So(m.subsystem, ShouldEqual, "console")
				So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestRecordingHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording a stage change", func() {
			before := testutil.ToFloat64(globalManager.stageChanges.WithLabelValues("shortlisted"))
			RecordStageChange("shortlisted")

			Convey("Then the labelled counter increases by one", func() {
				So(testutil.ToFloat64(globalManager.stageChanges.WithLabelValues("shortlisted")), ShouldEqual, before+1)
			})
		})

		Convey("When recording rejections", func() {
			before := testutil.ToFloat64(globalManager.rejections.WithLabelValues("true"))
			RecordRejection(true)
			RecordRejection(false)

			Convey("Then notified rejections are counted separately", func() {
				So(testutil.ToFloat64(globalManager.rejections.WithLabelValues("true")), ShouldEqual, before+1)
			})
		})

		Convey("When setting gauges", func() {
			UpdateQueueSize(7)
			UpdateCandidateTotal(42)
			UpdateWizardSessions(3)

			Convey("Then they hold the last value", func() {
				So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, 7)
				So(testutil.ToFloat64(globalManager.candidateTotal), ShouldEqual, 42)
				So(testutil.ToFloat64(globalManager.wizardSessions), ShouldEqual, 3)
			})
		})

		Convey("When every helper is called", func() {
			So(func() {
				RecordSimilarityRanking(3, 20)
				RecordWizardTransition("next")
				RecordWizardSubmission()
				RecordWizardDuplicate()
				RecordSettingChange("branding")
				RecordSettingsSave()
				RecordInterviewScheduled()
				RecordOfferTransition("sent")
				RecordNotificationQueued("rejection")
				RecordNotificationDelivered("rejection", 1)
				RecordNotificationDropped("queue_full")
				UpdateQueueCapacity(10)
				UpdateWorkerCount(2)
				RecordStoreQueryLatency(0.5)
				RecordHTTPRequest("candidates", "GET", "200")
				RecordHTTPRequestDuration("candidates", "GET", "200", 2)
				RecordErrorByEndpoint("candidates", "GET", "not_found")
				RecordErrorByComponent("queue", "closed")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)

			Convey("Then the registry exposes the console namespace", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "talentdesk_console_"), ShouldBeTrue)
				}
			})
		})
	})
}
