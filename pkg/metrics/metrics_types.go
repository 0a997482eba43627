package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Scoring Metrics
	ScoresTotal       *prometheus.CounterVec
	ScoringDuration   prometheus.Histogram
	ScoringConfidence prometheus.Histogram

	// Analysis Metrics
	AnalysesTotal      *prometheus.CounterVec
	AnalysisDuration   prometheus.Histogram
	AnalysisComponents prometheus.Histogram
	InsightsTotal      *prometheus.CounterVec
	ActiveAnalyses     prometheus.Gauge

	// Knowledge Metrics
	CatalogPatterns     prometheus.Gauge
	CatalogRules        prometheus.Gauge
	CatalogReloadsTotal *prometheus.CounterVec

	// Auth Metrics
	AuthFailuresTotal prometheus.Counter

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initHTTPMetrics()
	r.initScoringMetrics()
	r.initAnalysisMetrics()
	r.initKnowledgeMetrics()
	r.initAuthMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler returns an HTTP handler serving the registry in Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
