// Package metrics provides Prometheus metrics for the Nora matching service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Navigation
	navigations *prometheus.CounterVec
	redirects   *prometheus.CounterVec
	logins      *prometheus.CounterVec

	// Catalog
	catalogSize     prometheus.Gauge
	projectsCreated prometheus.Counter
	filterLatency   prometheus.Histogram
	filterResults   prometheus.Histogram

	// Review
	applicationsSubmitted prometheus.Counter
	applicationsDuplicate prometheus.Counter
	statusChanges         *prometheus.CounterVec
	unauthorizedActions   *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level recorders

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out of /metrics

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Configure rebuilds the global collectors on a fresh registry. Call it once
// at startup, before serving /metrics.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(customRegistry)}, opts...)...)
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nora",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.navigations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "navigations_total",
		Help:      "Resolved navigations by committed view and device class",
	}, []string{"view", "device"})

	m.redirects = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "navigation_redirects_total",
		Help:      "Navigations redirected by the role gate or unknown view fallback",
	}, []string{"requested", "reason"})

	m.logins = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "logins_total",
		Help:      "Session logins by role",
	}, []string{"role"})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_projects",
		Help:      "Number of projects in the catalog",
	})

	m.projectsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projects_created_total",
		Help:      "Projects created by professors",
	})

	m.filterLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "filter_latency_milliseconds",
		Help:      "Time spent resolving the visible catalog",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
	})

	m.filterResults = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "filter_results",
		Help:      "Number of projects returned by a catalog query",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})

	m.applicationsSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "applications_submitted_total",
		Help:      "Applications accepted into the roster",
	})

	m.applicationsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "applications_duplicate_total",
		Help:      "Application resubmissions rejected as duplicates",
	})

	m.statusChanges = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "status_changes_total",
		Help:      "Review status overwrites by target status",
	}, []string{"status"})

	m.unauthorizedActions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unauthorized_actions_total",
		Help:      "Mutations rejected by the role gate",
	}, []string{"action"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "HTTP errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordNavigation counts a committed view.
func RecordNavigation(view, device string) {
	globalManager.navigations.WithLabelValues(view, device).Inc()
}

// RecordRedirect counts a navigation that did not land on the requested view.
func RecordRedirect(requested, reason string) {
	globalManager.redirects.WithLabelValues(requested, reason).Inc()
}

// RecordLogin counts a login for role.
func RecordLogin(role string) {
	globalManager.logins.WithLabelValues(role).Inc()
}

// UpdateCatalogSize sets the catalog size gauge.
func UpdateCatalogSize(n int) {
	globalManager.catalogSize.Set(float64(n))
}

// RecordProjectCreated increments the created projects counter.
func RecordProjectCreated() {
	globalManager.projectsCreated.Inc()
}

// RecordFilter records latency and result size of a catalog query.
func RecordFilter(latencyMs float64, results int) {
	globalManager.filterLatency.Observe(latencyMs)
	globalManager.filterResults.Observe(float64(results))
}

// RecordApplicationSubmitted increments the submitted applications counter.
func RecordApplicationSubmitted() {
	globalManager.applicationsSubmitted.Inc()
}

// RecordApplicationDuplicate increments the duplicate applications counter.
func RecordApplicationDuplicate() {
	globalManager.applicationsDuplicate.Inc()
}

// RecordStatusChange counts a status overwrite.
func RecordStatusChange(status string) {
	globalManager.statusChanges.WithLabelValues(status).Inc()
}

// RecordUnauthorized counts a mutation rejected by the role gate.
func RecordUnauthorized(action string) {
	globalManager.unauthorizedActions.WithLabelValues(action).Inc()
}

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

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
