// Package metrics provides Prometheus metrics for the ufcradar service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultNamespace       = "ufcradar"
	defaultRefreshInterval = 10 * time.Second
)

// LatencyBuckets are the millisecond buckets used by the global manager.
var LatencyBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500} //nolint:gochecknoglobals // shared bucket layout

// Manager manages all Prometheus metrics for the ufcradar service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Query metrics
	radarQueries      *prometheus.CounterVec
	radarQueryLatency prometheus.Histogram
	radarFights       prometheus.Histogram

	// Dataset metrics
	datasetLoadLatency *prometheus.HistogramVec
	datasetRows        *prometheus.GaugeVec
	datasetRowsSkipped *prometheus.CounterVec
	fieldFallbacks     *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
	cacheInvalidations prometheus.Counter
	watcherEvents      *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(
		WithNamespace(defaultNamespace),
		WithHistogramBuckets(LatencyBuckets),
		WithRefreshInterval(defaultRefreshInterval),
		WithPrometheusRegistry(customRegistry),
	)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval is how often periodic gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// RefreshInterval is the sampling interval of the global manager's process gauges.
func RefreshInterval() time.Duration { return globalManager.refreshInterval }

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Name: name, Help: help,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Name: name, Help: help,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Name: name, Help: help,
		Buckets: buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.radarQueries = auto.NewCounterVec(
		m.counterOpts("radar_queries_total", "Radar queries by outcome (ok, invalid_request, not_found, unavailable)"),
		[]string{"outcome"},
	)
	m.radarQueryLatency = auto.NewHistogram(
		m.histogramOpts("radar_query_latency_milliseconds", "Radar query latency in milliseconds", m.histogramBuckets),
	)
	m.radarFights = auto.NewHistogram(
		m.histogramOpts("radar_fights_resolved", "Number of fights aggregated per successful query", []float64{0, 1, 2, 3, 5, 10, 20, 50}),
	)

	m.datasetLoadLatency = auto.NewHistogramVec(
		m.histogramOpts("dataset_load_latency_milliseconds", "Time to build a source index in milliseconds", m.histogramBuckets),
		[]string{"source"},
	)
	m.datasetRows = auto.NewGaugeVec(
		m.gaugeOpts("dataset_rows", "Rows held in memory per source"),
		[]string{"source"},
	)
	m.datasetRowsSkipped = auto.NewCounterVec(
		m.counterOpts("dataset_rows_skipped_total", "Rows dropped while loading because a required field was missing"),
		[]string{"source"},
	)
	m.fieldFallbacks = auto.NewCounterVec(
		m.counterOpts("field_fallbacks_total", "Malformed fields replaced by their fallback value"),
		[]string{"field"},
	)
	m.cacheLookups = auto.NewCounterVec(
		m.counterOpts("cache_lookups_total", "Dataset cache lookups by source and result (hit, miss)"),
		[]string{"source", "result"},
	)
	m.cacheInvalidations = auto.NewCounter(
		m.counterOpts("cache_invalidations_total", "Number of dataset cache invalidations"),
	)
	m.watcherEvents = auto.NewCounterVec(
		m.counterOpts("watcher_events_total", "Data directory events observed by the watcher"),
		[]string{"op"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "Current memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Current number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// Query metrics.

// RecordRadarQuery counts a radar query with its outcome label.
func RecordRadarQuery(outcome string) {
	globalManager.radarQueries.WithLabelValues(outcome).Inc()
}

// RecordRadarQueryLatency records radar query latency in milliseconds.
func RecordRadarQueryLatency(latencyMs float64) {
	globalManager.radarQueryLatency.Observe(latencyMs)
}

// RecordRadarFights records how many fights a successful query aggregated.
func RecordRadarFights(n int) {
	globalManager.radarFights.Observe(float64(n))
}

// Dataset metrics.

// RecordDatasetLoad records the build latency of a source index.
func RecordDatasetLoad(source string, latencyMs float64) {
	globalManager.datasetLoadLatency.WithLabelValues(source).Observe(latencyMs)
}

// UpdateDatasetRows sets the number of rows held for a source.
func UpdateDatasetRows(source string, rows int) {
	globalManager.datasetRows.WithLabelValues(source).Set(float64(rows))
}

// RecordDatasetRowsSkipped adds n skipped rows for a source.
func RecordDatasetRowsSkipped(source string, n int) {
	if n <= 0 {
		return
	}
	globalManager.datasetRowsSkipped.WithLabelValues(source).Add(float64(n))
}

// RecordFieldFallback counts a malformed field replaced by its fallback.
func RecordFieldFallback(field string) {
	globalManager.fieldFallbacks.WithLabelValues(field).Inc()
}

// RecordCacheLookup counts a cache hit or miss for a source.
func RecordCacheLookup(source string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	globalManager.cacheLookups.WithLabelValues(source, result).Inc()
}

// RecordCacheInvalidation counts a cache invalidation.
func RecordCacheInvalidation() {
	globalManager.cacheInvalidations.Inc()
}

// RecordWatcherEvent counts a data directory event.
func RecordWatcherEvent(op string) {
	globalManager.watcherEvents.WithLabelValues(op).Inc()
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
