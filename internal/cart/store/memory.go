// Package store persists carts. Storage is partitioned by tenant slug at
// this layer, so a read path cannot forget to filter and leak line items
// across tenants.
package store

import (
	"context"
	"sync"

	id "extendbee/pkg/domain"
	"extendbee/pkg/platform/sentinel"

	"extendbee/internal/cart/models"
)

// InMemory stores carts in memory for development and tests.
type InMemory struct {
	mu    sync.RWMutex
	carts map[id.CartID]map[id.Slug]map[string]models.LineItem
}

// NewInMemory creates an in-memory cart store.
func NewInMemory() *InMemory {
	return &InMemory{carts: make(map[id.CartID]map[id.Slug]map[string]models.LineItem)}
}

// SaveItem inserts or replaces the line in its tenant partition.
func (s *InMemory) SaveItem(_ context.Context, cartID id.CartID, item models.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenants, ok := s.carts[cartID]
	if !ok {
		tenants = make(map[id.Slug]map[string]models.LineItem)
		s.carts[cartID] = tenants
	}
	lines, ok := tenants[item.TenantSlug]
	if !ok {
		lines = make(map[string]models.LineItem)
		tenants[item.TenantSlug] = lines
	}
	lines[item.Key()] = item
	return nil
}

// FindItem returns one line from the tenant partition.
func (s *InMemory) FindItem(_ context.Context, cartID id.CartID, tenantSlug id.Slug, key string) (models.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.carts[cartID][tenantSlug][key]
	if !ok {
		return models.LineItem{}, sentinel.ErrNotFound
	}
	return item, nil
}

// ListItems returns every line in the tenant partition.
func (s *InMemory) ListItems(_ context.Context, cartID id.CartID, tenantSlug id.Slug) ([]models.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := s.carts[cartID][tenantSlug]
	out := make([]models.LineItem, 0, len(lines))
	for _, item := range lines {
		out = append(out, item)
	}
	return out, nil
}

// RemoveItem deletes one line from the tenant partition.
func (s *InMemory) RemoveItem(_ context.Context, cartID id.CartID, tenantSlug id.Slug, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, ok := s.carts[cartID][tenantSlug]
	if !ok {
		return sentinel.ErrNotFound
	}
	if _, ok := lines[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(lines, key)
	return nil
}

// ClearTenant drops the tenant's partition only.
func (s *InMemory) ClearTenant(_ context.Context, cartID id.CartID, tenantSlug id.Slug) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts[cartID], tenantSlug)
	return nil
}

// ClearAll drops every tenant partition in the cart.
func (s *InMemory) ClearAll(_ context.Context, cartID id.CartID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
	return nil
}
