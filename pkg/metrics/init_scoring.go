package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initScoringMetrics() {
	r.ScoresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strategy_scores_total",
			Help: "Total number of components scored, by scoring method",
		},
		[]string{"method"},
	)

	r.ScoringDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "strategy_scoring_duration_seconds",
			Help:    "Component scoring duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	r.ScoringConfidence = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "strategy_scoring_confidence",
			Help:    "Distribution of scoring confidence values",
			Buckets: []float64{0.3, 0.5, 0.7, 0.9, 1.0},
		},
	)
}
