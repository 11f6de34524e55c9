package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it uses the default namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "lungrisk")
				So(manager.subsystem, ShouldEqual, "assessment")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordAssessment("low", 12)

			Convey("Then metric names and labels follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, mf := range families {
					if mf.GetName() == "test_namespace_assessment_completed_total" {
						found = true
						So(mf.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "category")
						So(mf.GetMetric()[0].GetLabel()[1].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are given", func() {
			manager := NewManager(
				WithNamespace(""),
				WithConstLabels(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "lungrisk")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.scoreBuckets, ShouldHaveLength, 11)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When assessments are recorded", func() {
			m.RecordAssessment("high", 42)
			m.RecordAssessment("high", 55)
			m.RecordAssessment("low", 3)

			Convey("Then counts are kept per category", func() {
				So(testutil.ToFloat64(m.assessments.WithLabelValues("high")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.assessments.WithLabelValues("low")), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.riskScore), ShouldEqual, 1)
			})
		})

		Convey("When components and pack-years are recorded", func() {
			m.RecordComponents(30, 35, -23)
			m.RecordPackYears(10)

			Convey("Then one series exists per component", func() {
				So(testutil.CollectAndCount(m.componentScore), ShouldEqual, 3)
			})
		})

		Convey("When invalid inputs are recorded", func() {
			m.RecordInvalidInput("age", "gte")

			Convey("Then they are labelled by field and rule", func() {
				So(testutil.ToFloat64(m.invalidRequests.WithLabelValues("age", "gte")), ShouldEqual, 1)
			})
		})

		Convey("When batch metrics are recorded", func() {
			m.RecordBatchSize(3)
			m.RecordBatchJob("ok")
			m.RecordBatchJob("ok")
			m.RecordBatchJob("rejected")
			m.AddQueueDepth(3)
			m.AddQueueDepth(-1)
			m.AddWorkersActive(2)

			Convey("Then outcomes and gauges are tracked", func() {
				So(testutil.ToFloat64(m.batchJobs.WithLabelValues("ok")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.batchJobs.WithLabelValues("rejected")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.queueDepth), ShouldEqual, 2)
				So(testutil.ToFloat64(m.workersActive), ShouldEqual, 2)
				So(testutil.CollectAndCount(m.batchSize), ShouldEqual, 1)
			})
		})

		Convey("When HTTP and error metrics are recorded", func() {
			m.RecordHTTPRequest("assessments", "POST", "200")
			m.RecordHTTPRequestDuration("assessments", "POST", "200", 1.5)
			m.RecordErrorByType("client_error", "medium")
			m.RecordErrorByEndpoint("assessments", "POST", "client_error")
			m.RecordErrorLatency("http", "client_error", 0.4)

			Convey("Then the request counter is exposed", func() {
				expected := `
# HELP lungrisk_assessment_http_requests_total Total number of HTTP requests by endpoint and method
# TYPE lungrisk_assessment_http_requests_total counter
lungrisk_assessment_http_requests_total{endpoint="assessments",method="POST",status_code="200"} 1
`
				err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "lungrisk_assessment_http_requests_total")
				So(err, ShouldBeNil)
			})
		})

		Convey("When system metrics are recorded", func() {
			So(func() {
				m.UpdateSystemMemoryUsage(1024)
				m.UpdateSystemGoroutineCount(12)
				m.RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 12)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(GetRegistry(), ShouldNotBeNil)

		Convey("Then the package helpers do not panic", func() {
			So(func() {
				RecordAssessment("medium", 30)
				RecordComponents(10, 10, 0)
				RecordPackYears(2.5)
				RecordScoringLatency(0.02)
				RecordInvalidInput("diet", "required")
				RecordHTTPRequest("reference", "GET", "200")
				RecordHTTPRequestDuration("reference", "GET", "200", 0.2)
				RecordErrorByType("not_found", "medium")
				RecordErrorByEndpoint("reference", "POST", "not_found")
				RecordErrorLatency("http", "not_found", 0.1)
				UpdateSystemMemoryUsage(2048)
				UpdateSystemGoroutineCount(4)
				RecordSystemGCPauseTime(1)
				RecordBatchSize(1)
				RecordBatchJob("ok")
				AddQueueDepth(0)
				AddWorkersActive(0)
			}, ShouldNotPanic)
		})

		Convey("Then the global registry exposes the assessment counter", func() {
			RecordAssessment("low", 0)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, mf := range families {
				names = append(names, mf.GetName())
			}
			So(names, ShouldContain, "lungrisk_assessment_completed_total")
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given a configured global manager", t, func() {
		registry := Configure(WithNamespace("lungrisk_test"), WithConstLabels(map[string]string{"env": "staging"}))
		defer Configure()

		RecordAssessment("high", 45)

		Convey("Then /healthz gathers from the new registry", func() {
			So(GetRegistry(), ShouldEqual, registry)

			expected := `
# HELP lungrisk_test_assessment_completed_total Total number of completed assessments by risk category
# TYPE lungrisk_test_assessment_completed_total counter
lungrisk_test_assessment_completed_total{category="high",env="staging"} 1
`
			err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "lungrisk_test_assessment_completed_total")
			So(err, ShouldBeNil)
		})
	})
}
