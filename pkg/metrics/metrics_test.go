package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration not initialized")
	}
	if r.ScoresTotal == nil {
		t.Error("ScoresTotal not initialized")
	}
	if r.AnalysesTotal == nil {
		t.Error("AnalysesTotal not initialized")
	}
	if r.InsightsTotal == nil {
		t.Error("InsightsTotal not initialized")
	}
	if r.CatalogPatterns == nil {
		t.Error("CatalogPatterns not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	// Record some requests
	r.RecordHTTPRequest("POST", "/api/v1/score", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("POST", "/api/v1/analyze", "200", 200*time.Millisecond)
	r.RecordHTTPRequest("POST", "/api/v1/score", "400", 50*time.Millisecond)

	// Verify counter was incremented
	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("POST", "/api/v1/score", "200")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 1 {
		t.Errorf("Counter value = %v, want 1", metric.Counter.GetValue())
	}
}

func TestRecordScore(t *testing.T) {
	r := NewRegistry()

	// Record scores through different methods
	r.RecordScore("pattern_match", 0.95, time.Millisecond)
	r.RecordScore("pattern_match", 0.95, time.Millisecond)
	r.RecordScore("keyword", 0.5, time.Millisecond)

	patternCounter, err := r.ScoresTotal.GetMetricWithLabelValues("pattern_match")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := patternCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Pattern counter = %v, want 2", metric.Counter.GetValue())
	}

	keywordCounter, err := r.ScoresTotal.GetMetricWithLabelValues("keyword")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	if err := keywordCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 1 {
		t.Errorf("Keyword counter = %v, want 1", metric.Counter.GetValue())
	}
}

func TestRecordAnalysis(t *testing.T) {
	r := NewRegistry()

	r.RecordAnalysis("success", 5, 50*time.Millisecond)
	r.RecordAnalysis("success", 12, 80*time.Millisecond)
	r.RecordAnalysis("error", 0, time.Millisecond)

	successCounter, err := r.AnalysesTotal.GetMetricWithLabelValues("success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := successCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Success counter = %v, want 2", metric.Counter.GetValue())
	}

	errorCounter, err := r.AnalysesTotal.GetMetricWithLabelValues("error")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	if err := errorCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 1 {
		t.Errorf("Error counter = %v, want 1", metric.Counter.GetValue())
	}
}

func TestRecordInsight(t *testing.T) {
	r := NewRegistry()

	r.RecordInsight("strength")
	r.RecordInsight("strength")
	r.RecordInsight("vulnerability")

	strengthCounter, err := r.InsightsTotal.GetMetricWithLabelValues("strength")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := strengthCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Strength counter = %v, want 2", metric.Counter.GetValue())
	}
}

func TestGaugeMetrics(t *testing.T) {
	r := NewRegistry()

	// Test various gauge metrics
	r.UpdateCatalogSize(40, 12)
	r.ActiveAnalyses.Set(3)

	tests := []struct {
		name     string
		gauge    prometheus.Gauge
		expected float64
	}{
		{"CatalogPatterns", r.CatalogPatterns, 40},
		{"CatalogRules", r.CatalogRules, 12},
		{"ActiveAnalyses", r.ActiveAnalyses, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var metric dto.Metric
			if err := tt.gauge.Write(&metric); err != nil {
				t.Fatalf("Failed to write metric: %v", err)
			}

			if metric.Gauge.GetValue() != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, metric.Gauge.GetValue(), tt.expected)
			}
		})
	}
}

func TestRecordCatalogReload(t *testing.T) {
	r := NewRegistry()

	r.RecordCatalogReload("success")
	r.RecordCatalogReload("success")
	r.RecordCatalogReload("error")

	successCounter, err := r.CatalogReloadsTotal.GetMetricWithLabelValues("success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := successCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Reload success counter = %v, want 2", metric.Counter.GetValue())
	}
}

func TestAuthFailuresCounter(t *testing.T) {
	r := NewRegistry()

	r.AuthFailuresTotal.Inc()
	r.AuthFailuresTotal.Inc()

	var metric dto.Metric
	if err := r.AuthFailuresTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Auth failures = %v, want 2", metric.Counter.GetValue())
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()

	r.UpdateSystemMetrics(time.Now().Add(-30 * time.Second))

	var metric dto.Metric
	if err := r.UptimeSeconds.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Gauge.GetValue() < 30 {
		t.Errorf("Uptime = %v, want at least 30", metric.Gauge.GetValue())
	}

	if err := r.GoRoutines.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Gauge.GetValue() < 1 {
		t.Errorf("GoRoutines = %v, want at least 1", metric.Gauge.GetValue())
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordScore("pattern_match", 0.95, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Handler status = %d, want 200", rec.Code)
	}

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	if !strings.Contains(string(body), "strategy_scores_total") {
		t.Error("Exposition output missing strategy_scores_total")
	}
}

func TestHistogramObservations(t *testing.T) {
	r := NewRegistry()

	r.RecordScore("default", 0.5, 2*time.Millisecond)
	r.RecordAnalysis("success", 10, 20*time.Millisecond)

	// Gather and verify histogram sample counts
	families, err := r.registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := map[string]uint64{}
	for _, fam := range families {
		switch fam.GetName() {
		case "strategy_scoring_duration_seconds", "strategy_analysis_duration_seconds", "strategy_analysis_components":
			for _, m := range fam.GetMetric() {
				found[fam.GetName()] = m.GetHistogram().GetSampleCount()
			}
		}
	}

	for _, name := range []string{
		"strategy_scoring_duration_seconds",
		"strategy_analysis_duration_seconds",
		"strategy_analysis_components",
	} {
		if found[name] != 1 {
			t.Errorf("%s sample count = %d, want 1", name, found[name])
		}
	}
}
