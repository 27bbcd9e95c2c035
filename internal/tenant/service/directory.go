package service

import (
	"context"
	"errors"
	"log/slog"

	"extendbee/internal/platform/tracing"
	"extendbee/internal/tenant/metrics"
	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
	dErrors "extendbee/pkg/domain-errors"
	"extendbee/pkg/platform/sentinel"
)

// Directory resolves public tenant lookups. Only active tenants are visible:
// a pending, suspended, or closed tenant is indistinguishable from a
// nonexistent one, so tenant existence and status never leak to shoppers.
type Directory struct {
	tenants TenantStore
	metrics *metrics.Metrics
	tracer  tracing.Tracer
	logger  *slog.Logger
}

// NewDirectory constructs a Directory. metrics may be nil; tracer defaults to
// a no-op when nil.
func NewDirectory(tenants TenantStore, m *metrics.Metrics, tracer tracing.Tracer, logger *slog.Logger) *Directory {
	if tracer == nil {
		tracer = tracing.NewNoop()
	}
	return &Directory{tenants: tenants, metrics: m, tracer: tracer, logger: logger}
}

// FindBySlug returns the active tenant for the slug.
//
// Errors: CodeTenantNotFound when no active tenant matches (covering both
// missing and non-active tenants), CodeUpstream when the backing store fails.
func (d *Directory) FindBySlug(ctx context.Context, slug id.Slug) (*models.Tenant, error) {
	ctx, span := d.tracer.Start(ctx, tracing.SpanResolveTenant,
		tracing.String(tracing.AttrTenantSlug, slug.String()),
	)

	tenant, err := d.tenants.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			d.count("not_found")
			notFound := dErrors.New(dErrors.CodeTenantNotFound, "store not found")
			span.End(nil)
			return nil, notFound
		}
		d.count("error")
		d.logger.ErrorContext(ctx, "tenant lookup failed", "slug", slug, "error", err)
		wrapped := dErrors.Wrap(err, dErrors.CodeUpstream, "tenant lookup failed")
		span.End(wrapped)
		return nil, wrapped
	}

	if !tenant.IsActive() {
		// Hidden, not an error from the shopper's perspective. The distinct
		// metric label keeps it visible to operators.
		d.count("hidden")
		span.End(nil)
		return nil, dErrors.New(dErrors.CodeTenantNotFound, "store not found")
	}

	d.count("found")
	span.End(nil)
	return tenant, nil
}

func (d *Directory) count(result string) {
	if d.metrics != nil {
		d.metrics.Lookups.WithLabelValues(result).Inc()
	}
}
