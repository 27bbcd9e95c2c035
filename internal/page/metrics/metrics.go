package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the page resolution and composition metrics.
type Metrics struct {
	// Resolutions counts page lookups by result: exact, homepage_fallback,
	// not_found, error.
	Resolutions *prometheus.CounterVec
	// UnknownSections counts sections skipped because no renderer is
	// registered for their type.
	UnknownSections *prometheus.CounterVec
	// ComposeSeconds observes full page composition latency.
	ComposeSeconds prometheus.Histogram
}

// New creates and registers the page metrics.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "extendbee_page_resolutions_total",
			Help: "Page resolutions by result",
		}, []string{"result"}),
		UnknownSections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "extendbee_page_unknown_sections_total",
			Help: "Sections skipped because their type has no renderer",
		}, []string{"type"}),
		ComposeSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "extendbee_page_compose_seconds",
			Help:    "Latency of page composition",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
