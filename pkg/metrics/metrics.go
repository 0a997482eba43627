package metrics

import (
	"runtime"
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordScore records a single component scoring with the method that
// produced the result
func (r *Registry) RecordScore(method string, confidence float64, duration time.Duration) {
	r.ScoresTotal.WithLabelValues(method).Inc()
	r.ScoringDuration.Observe(duration.Seconds())
	r.ScoringConfidence.Observe(confidence)
}

// RecordAnalysis records a completed map analysis
func (r *Registry) RecordAnalysis(status string, components int, duration time.Duration) {
	r.AnalysesTotal.WithLabelValues(status).Inc()
	r.AnalysisDuration.Observe(duration.Seconds())
	r.AnalysisComponents.Observe(float64(components))
}

// RecordInsight counts one generated insight by type
func (r *Registry) RecordInsight(insightType string) {
	r.InsightsTotal.WithLabelValues(insightType).Inc()
}

// RecordAuthFailure counts one rejected request
func (r *Registry) RecordAuthFailure() {
	r.AuthFailuresTotal.Inc()
}

// RecordResponseSize records the size of an HTTP response body
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

// IncHTTPRequestsInFlight increments the in-flight request gauge
func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight decrements the in-flight request gauge
func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

// UpdateCatalogSize sets the knowledge base size gauges
func (r *Registry) UpdateCatalogSize(patterns, rules int) {
	r.CatalogPatterns.Set(float64(patterns))
	r.CatalogRules.Set(float64(rules))
}

// RecordCatalogReload records a catalog reload attempt
func (r *Registry) RecordCatalogReload(status string) {
	r.CatalogReloadsTotal.WithLabelValues(status).Inc()
}

// UpdateSystemMetrics refreshes uptime and runtime gauges
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	r.MemoryAllocBytes.Set(float64(memStats.Alloc))
	r.MemorySysBytes.Set(float64(memStats.Sys))
}
