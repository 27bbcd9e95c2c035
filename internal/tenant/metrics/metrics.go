package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the tenant resolution metrics.
type Metrics struct {
	// Lookups counts directory lookups by result: found, not_found, hidden
	// (tenant exists but is not active), error.
	Lookups *prometheus.CounterVec
	// ConfigDegraded counts branding sub-fetches that fell back to defaults,
	// by field. ConfigDegraded is operator-only signal; it never surfaces to
	// shoppers.
	ConfigDegraded *prometheus.CounterVec
	// SnapshotLoadSeconds observes full snapshot assembly latency.
	SnapshotLoadSeconds prometheus.Histogram
}

// New creates and registers the tenant metrics.
func New() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "extendbee_tenant_lookups_total",
			Help: "Tenant directory lookups by result",
		}, []string{"result"}),
		ConfigDegraded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "extendbee_tenant_config_degraded_total",
			Help: "Branding sub-fetches degraded to defaults, by field",
		}, []string{"field"}),
		SnapshotLoadSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "extendbee_tenant_snapshot_load_seconds",
			Help:    "Latency of full tenant snapshot assembly",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
