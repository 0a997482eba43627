package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAuthMetrics() {
	r.AuthFailuresTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "strategy_auth_failures_total",
			Help: "Total number of failed authentication attempts",
		},
	)
}
