// Package service resolves which page renders for a requested slug and
// loads its visible sections.
package service

import (
	"context"
	"errors"
	"log/slog"

	"extendbee/internal/page/metrics"
	"extendbee/internal/page/models"
	"extendbee/internal/platform/tracing"
	id "extendbee/pkg/domain"
	dErrors "extendbee/pkg/domain-errors"
	"extendbee/pkg/platform/sentinel"
)

// PageStore is the persistence contract the resolver reads from.
type PageStore interface {
	FindPublishedBySlug(ctx context.Context, tenantID id.TenantID, slug id.Slug) (*models.Page, error)
	FindPublishedHomepage(ctx context.Context, tenantID id.TenantID) (*models.Page, error)
	VisibleSections(ctx context.Context, pageID id.PageID) ([]models.Section, error)
}

// Resolver finds the page to render for a tenant and requested slug.
type Resolver struct {
	pages   PageStore
	metrics *metrics.Metrics
	tracer  tracing.Tracer
	logger  *slog.Logger
}

// NewResolver constructs a Resolver. metrics may be nil; tracer defaults to
// a no-op when nil.
func NewResolver(pages PageStore, m *metrics.Metrics, tracer tracing.Tracer, logger *slog.Logger) *Resolver {
	if tracer == nil {
		tracer = tracing.NewNoop()
	}
	return &Resolver{pages: pages, metrics: m, tracer: tracer, logger: logger}
}

// ResolvePage returns the published page matching the slug, falling back to
// the tenant's homepage when no exact match exists. The fallback fires only
// on a true miss: a matching page with zero sections still resolves, since
// an empty page is a valid renderable state.
//
// Errors: CodePageNotFound when neither lookup matches, CodeUpstream when
// the backing store fails.
func (r *Resolver) ResolvePage(ctx context.Context, tenantID id.TenantID, requested id.Slug) (*models.Page, []models.Section, error) {
	ctx, span := r.tracer.Start(ctx, tracing.SpanResolvePage,
		tracing.String(tracing.AttrPageSlug, requested.String()),
	)

	page, result, err := r.findPage(ctx, tenantID, requested)
	if err != nil {
		r.count(result)
		span.End(err)
		return nil, nil, err
	}
	span.End(nil)

	sections, err := r.pages.VisibleSections(ctx, page.ID)
	if err != nil {
		r.count("error")
		r.logger.ErrorContext(ctx, "section load failed", "page_id", page.ID, "error", err)
		return nil, nil, dErrors.Wrap(err, dErrors.CodeUpstream, "section load failed")
	}

	r.count(result)
	return page, sections, nil
}

func (r *Resolver) findPage(ctx context.Context, tenantID id.TenantID, requested id.Slug) (*models.Page, string, error) {
	if !requested.IsEmpty() {
		page, err := r.pages.FindPublishedBySlug(ctx, tenantID, requested)
		if err == nil {
			return page, "exact", nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			r.logger.ErrorContext(ctx, "page lookup failed", "slug", requested, "error", err)
			return nil, "error", dErrors.Wrap(err, dErrors.CodeUpstream, "page lookup failed")
		}
	}

	page, err := r.pages.FindPublishedHomepage(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, "not_found", dErrors.New(dErrors.CodePageNotFound, "page not found")
		}
		r.logger.ErrorContext(ctx, "homepage lookup failed", "tenant_id", tenantID, "error", err)
		return nil, "error", dErrors.Wrap(err, dErrors.CodeUpstream, "homepage lookup failed")
	}
	if requested.IsEmpty() {
		return page, "exact", nil
	}
	return page, "homepage_fallback", nil
}

func (r *Resolver) count(result string) {
	if r.metrics != nil {
		r.metrics.Resolutions.WithLabelValues(result).Inc()
	}
}
