package service

import (
	"context"

	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
)

// Store interfaces define persistence contracts.

type TenantStore interface {
	CreateIfSlugAvailable(ctx context.Context, tenant *models.Tenant) error
	Update(ctx context.Context, tenant *models.Tenant) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	FindBySlug(ctx context.Context, slug id.Slug) (*models.Tenant, error)
}

type BrandingStore interface {
	ActiveTheme(ctx context.Context, tenantID id.TenantID) (models.Theme, error)
	HeaderFooter(ctx context.Context, tenantID id.TenantID) (models.HeaderFooterConfig, error)
	NavigationItems(ctx context.Context, tenantID id.TenantID) ([]models.NavigationItem, error)
}
