// Package metrics provides Prometheus metrics for the clipmark converter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversion outcome label values.
const (
	OutcomeSuccess    = "success"
	OutcomeUnreadable = "unreadable"
	OutcomeInvalid    = "invalid"
	OutcomeFailed     = "failed"
)

// Manager manages all Prometheus metrics for the clipmark service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	sizeBuckets      []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Core Conversion Metrics
	conversions       *prometheus.CounterVec
	inspections       *prometheus.CounterVec
	conversionLatency prometheus.Histogram
	inputBytes        prometheus.Histogram
	rowsRead          prometheus.Counter
	eventsEmitted     prometheus.Counter
	rowsSkipped       prometheus.Counter
	cellsDefaulted    prometheus.Counter
	paletteSize       prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Batch Metrics - offline multi-file conversion
	batchQueueSize     prometheus.Gauge
	batchActiveWorkers prometheus.Gauge
	batchJobs          *prometheus.CounterVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "clipmark",
		subsystem:        "converter",
		histogramBuckets: prometheus.DefBuckets,
		sizeBuckets:      prometheus.ExponentialBuckets(1024, 4, 8),
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.conversions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "conversions_total",
		Help:        "Total number of conversion runs by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.inspections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "inspections_total",
		Help:        "Total number of upload inspections by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.conversionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "conversion_latency_milliseconds",
		Help:        "Histogram of end-to-end conversion latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.inputBytes = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "input_bytes",
		Help:        "Size of uploaded CSV files in bytes",
		Buckets:     m.sizeBuckets,
		ConstLabels: labels,
	})

	m.rowsRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_read_total",
		Help:        "Total number of CSV data rows read",
		ConstLabels: labels,
	})

	m.eventsEmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_emitted_total",
		Help:        "Total number of timeline instances written",
		ConstLabels: labels,
	})

	m.rowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_skipped_total",
		Help:        "Total number of rows dropped for a blank code",
		ConstLabels: labels,
	})

	m.cellsDefaulted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "time_cells_defaulted_total",
		Help:        "Total number of malformed time cells read as zero (indicates data quality)",
		ConstLabels: labels,
	})

	m.paletteSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "palette_codes",
		Help:        "Distinct event codes per conversion",
		Buckets:     prometheus.LinearBuckets(0, 10, 10),
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
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
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.batchQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_queue_size",
		Help:        "Files waiting in the batch queue",
		ConstLabels: labels,
	})

	m.batchActiveWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_active_workers",
		Help:        "Batch workers currently converting a file",
		ConstLabels: labels,
	})

	m.batchJobs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_jobs_total",
		Help:        "Batch file conversions by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type and severity",
			ConstLabels: labels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by HTTP endpoint",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "error_latency_milliseconds",
			Help:        "Latency of requests that ended in an error",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_bytes",
		Help:        "Allocated heap memory in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutines",
		Help:        "Current number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// Core Conversion Metrics

// RecordConversion counts a finished conversion run by outcome.
func RecordConversion(outcome string) {
	globalManager.conversions.WithLabelValues(outcome).Inc()
}

// RecordInspection counts a finished inspection by outcome.
func RecordInspection(outcome string) {
	globalManager.inspections.WithLabelValues(outcome).Inc()
}

// RecordConversionLatency observes an end-to-end conversion latency.
func RecordConversionLatency(latencyMs float64) {
	globalManager.conversionLatency.Observe(latencyMs)
}

// RecordInputBytes observes the size of an uploaded file.
func RecordInputBytes(n int) {
	globalManager.inputBytes.Observe(float64(n))
}

// RecordRows adds the row counters of one transform pass.
func RecordRows(read, emitted, skipped, defaulted int) {
	globalManager.rowsRead.Add(float64(read))
	globalManager.eventsEmitted.Add(float64(emitted))
	globalManager.rowsSkipped.Add(float64(skipped))
	globalManager.cellsDefaulted.Add(float64(defaulted))
}

// RecordPaletteSize observes the number of distinct codes in a run.
func RecordPaletteSize(n int) {
	globalManager.paletteSize.Observe(float64(n))
}

// HTTP Performance Metrics

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Batch Metrics

// UpdateBatchQueueSize sets the number of files waiting to be converted.
func UpdateBatchQueueSize(size int) {
	globalManager.batchQueueSize.Set(float64(size))
}

// AddBatchActiveWorkers adjusts the busy worker gauge by delta.
func AddBatchActiveWorkers(delta int) {
	globalManager.batchActiveWorkers.Add(float64(delta))
}

// RecordBatchJob counts a finished batch file by outcome.
func RecordBatchJob(outcome string) {
	globalManager.batchJobs.WithLabelValues(outcome).Inc()
}

// Error Metrics

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint counts an error by HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency observes the latency of a failed request.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime observes an average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry backing the package-level recorders.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
