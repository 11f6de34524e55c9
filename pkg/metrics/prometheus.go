// Package metrics provides Prometheus metrics for the lung risk service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	scoreBuckets     []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Assessment metrics
	assessments     *prometheus.CounterVec
	riskScore       prometheus.Histogram
	componentScore  *prometheus.HistogramVec
	packYears       prometheus.Histogram
	scoringLatency  prometheus.Histogram
	invalidRequests *prometheus.CounterVec

	// Batch Metrics
	batchSize     prometheus.Histogram
	batchJobs     *prometheus.CounterVec
	queueDepth    prometheus.Gauge
	workersActive prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// global holds the manager and the registry /healthz gathers from.
type global struct {
	manager  *Manager
	registry *prometheus.Registry
}

var current atomic.Pointer[global] //nolint:gochecknoglobals // process-wide metrics

func init() { //nolint:gochecknoinits // metrics work before Configure is called
	Configure()
}

// Configure replaces the global manager with one built from opts on a fresh
// registry and returns that registry. Call it before serving traffic.
func Configure(opts ...Option) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(registry))...)
	current.Store(&global{manager: m, registry: registry})
	return registry
}

func globalManager() *Manager { return current.Load().manager }

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lungrisk",
		subsystem:        "assessment",
		histogramBuckets: prometheus.DefBuckets,
		scoreBuckets:     prometheus.LinearBuckets(0, 10, 11), // one per 10 points
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.assessments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "completed_total",
		Help:        "Total number of completed assessments by risk category",
		ConstLabels: m.constLabels,
	}, []string{"category"})

	m.riskScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "risk_score",
		Help:        "Distribution of clamped total risk scores",
		Buckets:     m.scoreBuckets,
		ConstLabels: m.constLabels,
	})

	m.componentScore = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "component_score",
		Help:        "Distribution of score components (base, environmental, protective)",
		Buckets:     prometheus.LinearBuckets(-25, 5, 18),
		ConstLabels: m.constLabels,
	}, []string{"component"})

	m.packYears = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pack_years",
		Help:        "Distribution of computed pack-years",
		Buckets:     []float64{0, 5, 10, 20, 30, 60, 120, 240},
		ConstLabels: m.constLabels,
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "scoring_latency_milliseconds",
		Help:        "Time spent producing a report in milliseconds",
		Buckets:     []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		ConstLabels: m.constLabels,
	})

	m.invalidRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "invalid_inputs_total",
		Help:        "Rejected input fields by field and rule",
		ConstLabels: m.constLabels,
	}, []string{"field", "rule"})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_size",
		Help:        "Number of questionnaires per batch",
		Buckets:     []float64{1, 2, 5, 10, 25, 50, 100, 250},
		ConstLabels: m.constLabels,
	})

	m.batchJobs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_jobs_total",
		Help:        "Batch jobs by outcome (ok, rejected, cancelled)",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.queueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_depth",
		Help:        "Jobs waiting in batch queues",
		ConstLabels: m.constLabels,
	})

	m.workersActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "workers_active",
		Help:        "Batch workers currently running",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type",
			ConstLabels: m.constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by endpoint",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "error_latency_milliseconds",
			Help:        "Latency of operations that resulted in errors",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.constLabels,
	})
}

// RecordAssessment counts a completed assessment and observes its score.
func (m *Manager) RecordAssessment(category string, totalScore int) {
	m.assessments.WithLabelValues(category).Inc()
	m.riskScore.Observe(float64(totalScore))
}

// RecordComponents observes the individual score components.
func (m *Manager) RecordComponents(base, environmental, protective int) {
	m.componentScore.WithLabelValues("base").Observe(float64(base))
	m.componentScore.WithLabelValues("environmental").Observe(float64(environmental))
	m.componentScore.WithLabelValues("protective").Observe(float64(protective))
}

// RecordPackYears observes computed pack-years.
func (m *Manager) RecordPackYears(packYears float64) {
	m.packYears.Observe(packYears)
}

// RecordScoringLatency records report latency in milliseconds.
func (m *Manager) RecordScoringLatency(latencyMs float64) {
	m.scoringLatency.Observe(latencyMs)
}

// RecordInvalidInput counts a rejected input field.
func (m *Manager) RecordInvalidInput(field, rule string) {
	m.invalidRequests.WithLabelValues(field, rule).Inc()
}

// RecordBatchSize observes the size of a submitted batch.
func (m *Manager) RecordBatchSize(n int) {
	m.batchSize.Observe(float64(n))
}

// RecordBatchJob counts one processed batch job by outcome.
func (m *Manager) RecordBatchJob(outcome string) {
	m.batchJobs.WithLabelValues(outcome).Inc()
}

// AddQueueDepth moves the queue depth gauge by delta.
func (m *Manager) AddQueueDepth(delta int) {
	m.queueDepth.Add(float64(delta))
}

// AddWorkersActive moves the active worker gauge by delta.
func (m *Manager) AddWorkersActive(delta int) {
	m.workersActive.Add(float64(delta))
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func (m *Manager) RecordErrorLatency(component, errorType string, latencyMs float64) {
	m.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	m.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	m.systemGCPauseTime.Observe(pauseMs)
}

// Package-level helpers forward to the global manager.

// RecordAssessment counts a completed assessment on the global manager.
func RecordAssessment(category string, totalScore int) {
	globalManager().RecordAssessment(category, totalScore)
}

// RecordComponents observes score components on the global manager.
func RecordComponents(base, environmental, protective int) {
	globalManager().RecordComponents(base, environmental, protective)
}

// RecordPackYears observes pack-years on the global manager.
func RecordPackYears(packYears float64) { globalManager().RecordPackYears(packYears) }

// RecordScoringLatency records report latency on the global manager.
func RecordScoringLatency(latencyMs float64) { globalManager().RecordScoringLatency(latencyMs) }

// RecordInvalidInput counts a rejected input field on the global manager.
func RecordInvalidInput(field, rule string) { globalManager().RecordInvalidInput(field, rule) }

// RecordBatchSize observes a batch size on the global manager.
func RecordBatchSize(n int) { globalManager().RecordBatchSize(n) }

// RecordBatchJob counts a batch job on the global manager.
func RecordBatchJob(outcome string) { globalManager().RecordBatchJob(outcome) }

// AddQueueDepth moves the global queue depth gauge.
func AddQueueDepth(delta int) { globalManager().AddQueueDepth(delta) }

// AddWorkersActive moves the global active worker gauge.
func AddWorkersActive(delta int) { globalManager().AddWorkersActive(delta) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager().RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager().RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager().RecordErrorByType(errorType, severity)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager().RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager().RecordErrorLatency(component, errorType, latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager().UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager().UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager().RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the registry of the global manager.
func GetRegistry() *prometheus.Registry {
	return current.Load().registry
}
