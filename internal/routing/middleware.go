package routing

import (
	"context"
	"log/slog"
	"net/http"

	"extendbee/internal/platform/tracing"
	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
	dErrors "extendbee/pkg/domain-errors"
	"extendbee/pkg/platform/httputil"
)

type decisionKey struct{}
type snapshotKey struct{}
type linksKey struct{}

// SnapshotResolver turns a confirmed slug into a render-ready snapshot.
type SnapshotResolver interface {
	Snapshot(ctx context.Context, slug id.Slug) (*models.Snapshot, error)
}

// Middleware resolves the tenant for every storefront request and injects
// the decision, snapshot, and link builder into the request context.
type Middleware struct {
	resolver  *Resolver
	snapshots SnapshotResolver
	metrics   *Metrics
	tracer    tracing.Tracer
	logger    *slog.Logger
}

// NewMiddleware constructs the tenant resolution middleware. metrics may be
// nil; tracer defaults to a no-op when nil.
func NewMiddleware(resolver *Resolver, snapshots SnapshotResolver, m *Metrics, tracer tracing.Tracer, logger *slog.Logger) *Middleware {
	if tracer == nil {
		tracer = tracing.NewNoop()
	}
	return &Middleware{resolver: resolver, snapshots: snapshots, metrics: m, tracer: tracer, logger: logger}
}

// ResolveTenant rejects requests that address no known active tenant and
// passes everything the downstream handlers need through the context.
func (mw *Middleware) ResolveTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := mw.resolver.Resolve(r.Host, r.URL.Path)
		mw.count(decision)

		if !decision.HasCandidate() {
			httputil.WriteError(w, dErrors.New(dErrors.CodeTenantNotFound, "store not found"))
			return
		}

		ctx, span := mw.tracer.Start(r.Context(), tracing.SpanResolveTenant,
			tracing.String(tracing.AttrTenantSlug, decision.SlugCandidate.String()),
			tracing.String(tracing.AttrRoutingMode, string(decision.Mode)),
		)

		snapshot, err := mw.snapshots.Snapshot(ctx, decision.SlugCandidate)
		if err != nil {
			span.End(err)
			httputil.WriteError(w, err)
			return
		}
		span.End(nil)

		ctx = context.WithValue(ctx, decisionKey{}, decision)
		ctx = context.WithValue(ctx, snapshotKey{}, snapshot)
		ctx = context.WithValue(ctx, linksKey{}, NewLinks(decision.Mode, snapshot.Tenant.Slug))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (mw *Middleware) count(d Decision) {
	if mw.metrics == nil {
		return
	}
	result := "none"
	if d.HasCandidate() {
		result = "candidate"
	}
	mw.metrics.Resolutions.WithLabelValues(string(d.Mode), result).Inc()
}

// DecisionFrom returns the routing decision resolved for this request.
func DecisionFrom(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionKey{}).(Decision)
	return d, ok
}

// SnapshotFrom returns the tenant snapshot resolved for this request.
func SnapshotFrom(ctx context.Context) (*models.Snapshot, bool) {
	s, ok := ctx.Value(snapshotKey{}).(*models.Snapshot)
	return s, ok
}

// LinksFrom returns the link builder for this request's tenant and mode.
func LinksFrom(ctx context.Context) (Links, bool) {
	l, ok := ctx.Value(linksKey{}).(Links)
	return l, ok
}
