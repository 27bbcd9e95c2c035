// Package store persists pages and sections, with in-memory and PostgreSQL
// implementations behind the same contract.
package store

import (
	"context"
	"sync"

	id "extendbee/pkg/domain"
	"extendbee/pkg/platform/sentinel"

	"extendbee/internal/page/models"
)

// InMemory stores pages and sections in memory for development and tests.
type InMemory struct {
	mu       sync.RWMutex
	pages    map[id.PageID]*models.Page
	sections map[id.PageID][]models.Section
}

// NewInMemory creates an in-memory page store.
func NewInMemory() *InMemory {
	return &InMemory{
		pages:    make(map[id.PageID]*models.Page),
		sections: make(map[id.PageID][]models.Section),
	}
}

// SavePage inserts or replaces a page.
func (s *InMemory) SavePage(_ context.Context, p *models.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *p
	s.pages[p.ID] = &copied
	return nil
}

// SaveSections replaces the sections of a page.
func (s *InMemory) SaveSections(_ context.Context, pageID id.PageID, sections []models.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]models.Section, len(sections))
	copy(copied, sections)
	s.sections[pageID] = copied
	return nil
}

// FindPublishedBySlug returns the tenant's published page with the slug.
func (s *InMemory) FindPublishedBySlug(_ context.Context, tenantID id.TenantID, slug id.Slug) (*models.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pages {
		if p.TenantID == tenantID && p.Slug == slug && p.Published {
			copied := *p
			return &copied, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindPublishedHomepage returns the tenant's single published homepage.
func (s *InMemory) FindPublishedHomepage(_ context.Context, tenantID id.TenantID) (*models.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pages {
		if p.TenantID == tenantID && p.Type == models.PageTypeHomepage && p.Published {
			copied := *p
			return &copied, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// VisibleSections returns the page's visible sections ordered by sort order
// ascending, ties keeping insertion order.
func (s *InMemory) VisibleSections(_ context.Context, pageID id.PageID) ([]models.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Section
	for _, section := range s.sections[pageID] {
		if section.Visible {
			out = append(out, section)
		}
	}
	models.SortSections(out)
	return out, nil
}
