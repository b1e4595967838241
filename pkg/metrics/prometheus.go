// Package metrics provides Prometheus metrics for the meetmind extraction service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Pipeline
	pipelineRuns      *prometheus.CounterVec
	stageDuration     *prometheus.HistogramVec
	sentencesSeen     prometheus.Counter
	tasksExtracted    prometheus.Counter
	dependencyCycles  prometheus.Counter
	assignments       *prometheus.CounterVec
	validationFlags   *prometheus.CounterVec
	pipelineDurations prometheus.Histogram

	// Jobs
	jobsSubmitted prometheus.Counter
	jobsDuplicate prometheus.Counter
	jobsFinished  *prometheus.CounterVec
	jobsStored    prometheus.Gauge

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Workers
	workerCount             prometheus.Gauge
	workerBusy              prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "meetmind",
		subsystem:        "extractor",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		enabled:          true,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: m.histogramBuckets}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.pipelineRuns = auto.NewCounterVec(m.counterOpts("pipeline_runs_total", "Pipeline runs by outcome"), []string{"outcome"})
	m.stageDuration = auto.NewHistogramVec(m.histogramOpts("stage_duration_milliseconds", "Duration of each pipeline stage in milliseconds"), []string{"stage"})
	m.pipelineDurations = auto.NewHistogram(m.histogramOpts("pipeline_duration_milliseconds", "End-to-end pipeline duration in milliseconds"))
	m.sentencesSeen = auto.NewCounter(m.counterOpts("sentences_processed_total", "Transcript sentences fed to the pipeline"))
	m.tasksExtracted = auto.NewCounter(m.counterOpts("tasks_extracted_total", "Tasks detected across all runs"))
	m.dependencyCycles = auto.NewCounter(m.counterOpts("dependency_cycles_total", "Runs whose dependency graph contained a cycle"))
	m.assignments = auto.NewCounterVec(m.counterOpts("assignments_total", "Assignment results by method"), []string{"method"})
	m.validationFlags = auto.NewCounterVec(m.counterOpts("validation_flags_total", "Tasks flagged by post-assignment validation"), []string{"kind"})

	m.jobsSubmitted = auto.NewCounter(m.counterOpts("jobs_submitted_total", "Asynchronous jobs accepted"))
	m.jobsDuplicate = auto.NewCounter(m.counterOpts("jobs_duplicate_total", "Job submissions rejected as duplicates"))
	m.jobsFinished = auto.NewCounterVec(m.counterOpts("jobs_finished_total", "Jobs finished by status"), []string{"status"})
	m.jobsStored = auto.NewGauge(m.gaugeOpts("jobs_stored", "Jobs currently held in the result store"))

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Jobs waiting in the queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum queue capacity"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Jobs enqueued"))
	m.queueDequeued = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Jobs dequeued"))
	m.queueEnqueueErrors = auto.NewCounterVec(m.counterOpts("queue_enqueue_errors_total", "Rejected enqueues by reason"), []string{"reason"})

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Configured workers"))
	m.workerBusy = auto.NewGauge(m.gaugeOpts("worker_busy", "Workers currently processing a job"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogramOpts("worker_processing_latency_milliseconds", "Time a worker spends on one job in milliseconds"))
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Jobs that failed inside a worker"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total", "Errors by component and type"), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap memory in use in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
}

// RecordPipelineRun counts one run; outcome is "ok", "cyclic" or "error".
func RecordPipelineRun(outcome string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.pipelineRuns.WithLabelValues(outcome).Inc()
	globalManager.pipelineDurations.Observe(durationMs)
}

// RecordStageDuration observes the duration of a named pipeline stage.
func RecordStageDuration(stage string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.stageDuration.WithLabelValues(stage).Observe(durationMs)
}

// RecordExtraction counts the sentences read and tasks produced by a run.
func RecordExtraction(sentences, tasks int) {
	if !globalManager.enabled {
		return
	}
	globalManager.sentencesSeen.Add(float64(sentences))
	globalManager.tasksExtracted.Add(float64(tasks))
}

// RecordDependencyCycle counts a run with a cyclic dependency graph.
func RecordDependencyCycle() {
	if !globalManager.enabled {
		return
	}
	globalManager.dependencyCycles.Inc()
}

// RecordAssignment counts one assignment result by method.
func RecordAssignment(method string) {
	if !globalManager.enabled {
		return
	}
	globalManager.assignments.WithLabelValues(method).Inc()
}

// RecordValidationFlags adds n flags of kind (unassigned, low_confidence, conflict).
func RecordValidationFlags(kind string, n int) {
	if !globalManager.enabled || n == 0 {
		return
	}
	globalManager.validationFlags.WithLabelValues(kind).Add(float64(n))
}

// RecordJobSubmitted counts an accepted asynchronous job.
func RecordJobSubmitted() {
	if !globalManager.enabled {
		return
	}
	globalManager.jobsSubmitted.Inc()
}

// RecordJobDuplicate counts a duplicate job submission.
func RecordJobDuplicate() {
	if !globalManager.enabled {
		return
	}
	globalManager.jobsDuplicate.Inc()
}

// RecordJobFinished counts a job reaching a terminal status.
func RecordJobFinished(status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.jobsFinished.WithLabelValues(status).Inc()
}

// UpdateJobsStored sets the number of jobs held by the store.
func UpdateJobsStored(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.jobsStored.Set(float64(n))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	if !globalManager.enabled {
		return
	}
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	if !globalManager.enabled {
		return
	}
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue counts an enqueued job.
func RecordQueueEnqueue() {
	if !globalManager.enabled {
		return
	}
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue counts a dequeued job.
func RecordQueueDequeue() {
	if !globalManager.enabled {
		return
	}
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError counts a rejected enqueue.
func RecordQueueEnqueueError(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.workerCount.Set(float64(count))
}

// AddWorkerBusy moves the busy-worker gauge by delta.
func AddWorkerBusy(delta int) {
	if !globalManager.enabled {
		return
	}
	globalManager.workerBusy.Add(float64(delta))
}

// RecordWorkerProcessingLatency records the time a worker spent on one job.
func RecordWorkerProcessingLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError counts a failed job.
func RecordWorkerError() {
	if !globalManager.enabled {
		return
	}
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap memory in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// SetEnabled toggles recording on the global manager.
func SetEnabled(enabled bool) {
	globalManager.enabled = enabled
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
