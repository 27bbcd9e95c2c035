// Package service implements tenant resolution: the public directory lookup
// and the concurrent branding load that together produce a render-ready
// snapshot.
package service

import (
	"context"
	"log/slog"
	"time"

	"extendbee/internal/platform/tracing"
	"extendbee/internal/tenant/metrics"
	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
)

// Service combines the directory and the config loader into snapshot
// assembly, the single entry point consumers use to enter a tenant.
type Service struct {
	directory *Directory
	loader    *ConfigLoader
	metrics   *metrics.Metrics
}

// New constructs the tenant service. metrics may be nil; tracer defaults to
// a no-op when nil.
func New(tenants TenantStore, branding BrandingStore, m *metrics.Metrics, tracer tracing.Tracer, logger *slog.Logger) *Service {
	return &Service{
		directory: NewDirectory(tenants, m, tracer, logger),
		loader:    NewConfigLoader(branding, m, tracer, logger),
		metrics:   m,
	}
}

// Directory exposes the public lookup for callers that only need identity.
func (s *Service) Directory() *Directory { return s.directory }

// Snapshot resolves the slug and assembles the full render-ready snapshot.
// Branding degradation never fails the snapshot; only identity failures do.
func (s *Service) Snapshot(ctx context.Context, slug id.Slug) (*models.Snapshot, error) {
	start := time.Now()

	tenant, err := s.directory.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	cfg := s.loader.Load(ctx, tenant.ID)

	if s.metrics != nil {
		s.metrics.SnapshotLoadSeconds.Observe(time.Since(start).Seconds())
	}

	return &models.Snapshot{
		Tenant:       tenant,
		Theme:        cfg.Theme,
		HeaderFooter: cfg.HeaderFooter,
		NavItems:     cfg.NavItems,
	}, nil
}
