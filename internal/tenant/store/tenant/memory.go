package tenant

import (
	"context"
	"fmt"
	"sync"

	id "extendbee/pkg/domain"
	"extendbee/pkg/platform/sentinel"

	"extendbee/internal/tenant/models"
)

// ErrNotFound is returned when a tenant is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores tenants in memory for development and tests.
type InMemory struct {
	mu      sync.RWMutex
	tenants map[string]*models.Tenant
	slugIdx map[id.Slug]string
}

// NewInMemory creates an in-memory tenant store.
func NewInMemory() *InMemory {
	return &InMemory{
		tenants: make(map[string]*models.Tenant),
		slugIdx: make(map[id.Slug]string),
	}
}

// CreateIfSlugAvailable atomically creates the tenant if the slug is not
// already taken.
func (s *InMemory) CreateIfSlugAvailable(_ context.Context, t *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.slugIdx[t.Slug]; exists {
		return fmt.Errorf("tenant slug must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	key := t.ID.String()
	copied := *t
	s.tenants[key] = &copied
	s.slugIdx[t.Slug] = key
	return nil
}

// FindByID retrieves a tenant by its UUID.
func (s *InMemory) FindByID(_ context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tenants[tenantID.String()]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, ErrNotFound
}

// FindBySlug retrieves a tenant by slug. Slugs are stored normalized, so the
// lookup is exact.
func (s *InMemory) FindBySlug(_ context.Context, slug id.Slug) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if key, ok := s.slugIdx[slug]; ok {
		copied := *s.tenants[key]
		return &copied, nil
	}
	return nil, ErrNotFound
}

// Update updates an existing tenant.
func (s *InMemory) Update(_ context.Context, t *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := t.ID.String()
	if _, ok := s.tenants[key]; !ok {
		return ErrNotFound
	}
	copied := *t
	s.tenants[key] = &copied
	return nil
}
