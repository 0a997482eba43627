package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strategy_analyses_total",
			Help: "Total number of map analyses",
		},
		[]string{"status"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "strategy_analysis_duration_seconds",
			Help:    "Map analysis duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.AnalysisComponents = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "strategy_analysis_components",
			Help:    "Number of components per analysis",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	r.InsightsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strategy_insights_total",
			Help: "Total number of strategic insights generated, by type",
		},
		[]string{"type"},
	)

	r.ActiveAnalyses = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "strategy_active_analyses",
			Help: "Number of analyses currently running",
		},
	)
}
