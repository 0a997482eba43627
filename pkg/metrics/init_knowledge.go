package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initKnowledgeMetrics() {
	r.CatalogPatterns = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "strategy_catalog_patterns",
			Help: "Number of component patterns in the knowledge base",
		},
	)

	r.CatalogRules = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "strategy_catalog_rules",
			Help: "Number of heuristic rules in the knowledge base",
		},
	)

	r.CatalogReloadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strategy_catalog_reloads_total",
			Help: "Total number of catalog reloads",
		},
		[]string{"status"},
	)
}
