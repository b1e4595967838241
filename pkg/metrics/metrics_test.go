package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given a private registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			m.tasksExtracted.Add(3)

			Convey("Then collectors are registered under the namespace", func() {
				So(testutil.ToFloat64(m.tasksExtracted), ShouldEqual, 3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_tasks_extracted_total")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		SetEnabled(true)

		Convey("When recording pipeline metrics", func() {
			before := testutil.ToFloat64(globalManager.tasksExtracted)
			RecordExtraction(10, 4)
			RecordPipelineRun("ok", 12.5)
			RecordStageDuration("detect", 1.5)
			RecordAssignment("skill_match")
			RecordValidationFlags("unassigned", 2)
			RecordValidationFlags("conflict", 0)
			RecordDependencyCycle()

			Convey("Then counters move", func() {
				So(testutil.ToFloat64(globalManager.tasksExtracted)-before, ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.assignments.WithLabelValues("skill_match")), ShouldBeGreaterThanOrEqualTo, 1)
				So(testutil.ToFloat64(globalManager.validationFlags.WithLabelValues("unassigned")), ShouldBeGreaterThanOrEqualTo, 2)
			})
		})

		Convey("When recording job, queue and worker metrics", func() {
			So(func() {
				RecordJobSubmitted()
				RecordJobDuplicate()
				RecordJobFinished("done")
				UpdateJobsStored(3)
				UpdateQueueCapacity(10)
				UpdateQueueSize(2)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError("full")
				UpdateWorkerCount(4)
				AddWorkerBusy(1)
				AddWorkerBusy(-1)
				RecordWorkerProcessingLatency(3)
				RecordWorkerError()
				RecordHTTPRequest("/extract", "POST", "200")
				RecordHTTPRequestDuration("/extract", "POST", "200", 4)
				RecordErrorByComponent("worker", "pipeline")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, 2)
			So(testutil.ToFloat64(globalManager.jobsStored), ShouldEqual, 3)
		})

		Convey("When recording is disabled", func() {
			SetEnabled(false)
			defer SetEnabled(true)
			UpdateQueueSize(99)

			Convey("Then gauges keep their value", func() {
				So(testutil.ToFloat64(globalManager.queueSize), ShouldNotEqual, 99)
			})
		})

		Convey("When gathering the custom registry", func() {
			RecordJobSubmitted()
			out, err := testutil.GatherAndCount(GetRegistry(), "meetmind_extractor_jobs_submitted_total")

			Convey("Then the service metrics are exposed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldEqual, 1)
			})
		})
	})
}
