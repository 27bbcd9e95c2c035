package branding

import (
	"context"
	"sync"

	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
	"extendbee/pkg/platform/sentinel"
)

// ErrNotFound is returned when a tenant has no branding row of the requested kind.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores branding data in memory for development and tests.
type InMemory struct {
	mu       sync.RWMutex
	themes   map[id.TenantID]models.Theme
	chrome   map[id.TenantID]models.HeaderFooterConfig
	navItems map[id.TenantID][]models.NavigationItem
}

// NewInMemory creates an in-memory branding store.
func NewInMemory() *InMemory {
	return &InMemory{
		themes:   make(map[id.TenantID]models.Theme),
		chrome:   make(map[id.TenantID]models.HeaderFooterConfig),
		navItems: make(map[id.TenantID][]models.NavigationItem),
	}
}

// SaveTheme sets the active theme for a tenant, replacing any previous one.
func (s *InMemory) SaveTheme(_ context.Context, tenantID id.TenantID, theme models.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[tenantID] = theme
	return nil
}

// ActiveTheme returns the tenant's active theme.
func (s *InMemory) ActiveTheme(_ context.Context, tenantID id.TenantID) (models.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	theme, ok := s.themes[tenantID]
	if !ok {
		return models.Theme{}, ErrNotFound
	}
	return theme, nil
}

// SaveHeaderFooter sets the chrome configuration for a tenant.
func (s *InMemory) SaveHeaderFooter(_ context.Context, tenantID id.TenantID, cfg models.HeaderFooterConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chrome[tenantID] = cfg
	return nil
}

// HeaderFooter returns the tenant's chrome configuration.
func (s *InMemory) HeaderFooter(_ context.Context, tenantID id.TenantID) (models.HeaderFooterConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.chrome[tenantID]
	if !ok {
		return models.HeaderFooterConfig{}, ErrNotFound
	}
	return cfg, nil
}

// SaveNavigationItems replaces the tenant's navigation items.
func (s *InMemory) SaveNavigationItems(_ context.Context, tenantID id.TenantID, items []models.NavigationItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navItems[tenantID] = append([]models.NavigationItem(nil), items...)
	return nil
}

// NavigationItems returns the tenant's navigation items in original insertion
// order; callers apply the stable sort.
func (s *InMemory) NavigationItems(_ context.Context, tenantID id.TenantID) ([]models.NavigationItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.navItems[tenantID]
	return append([]models.NavigationItem(nil), items...), nil
}
