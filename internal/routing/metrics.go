package routing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks routing resolution outcomes.
type Metrics struct {
	// Resolutions counts decisions by addressing mode and result: candidate
	// when a slug was extracted, none when the request addresses no tenant.
	Resolutions *prometheus.CounterVec
}

// NewMetrics creates and registers the routing metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "extendbee_routing_resolutions_total",
			Help: "Routing decisions by addressing mode and result",
		}, []string{"mode", "result"}),
	}
}
