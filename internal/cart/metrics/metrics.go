package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the cart metrics.
type Metrics struct {
	// Operations counts cart mutations and reads by operation and result.
	Operations *prometheus.CounterVec
	// CheckoutValue observes submitted checkout totals in minor units.
	CheckoutValue prometheus.Histogram
}

// New creates and registers the cart metrics.
func New() *Metrics {
	return &Metrics{
		Operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "extendbee_cart_operations_total",
			Help: "Cart operations by type and result",
		}, []string{"op", "result"}),
		CheckoutValue: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "extendbee_cart_checkout_value",
			Help:    "Submitted checkout totals in minor currency units",
			Buckets: prometheus.ExponentialBuckets(100, 4, 10),
		}),
	}
}
