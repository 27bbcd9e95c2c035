// Package seeder populates stores with demo storefronts, either from
// built-in data or from a YAML fixture file.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	pagemodels "extendbee/internal/page/models"
	tenantmodels "extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
)

// TenantStore defines methods for seeding tenants
type TenantStore interface {
	CreateIfSlugAvailable(ctx context.Context, tenant *tenantmodels.Tenant) error
}

// BrandingStore defines methods for seeding branding
type BrandingStore interface {
	SaveTheme(ctx context.Context, tenantID id.TenantID, theme tenantmodels.Theme) error
	SaveHeaderFooter(ctx context.Context, tenantID id.TenantID, cfg tenantmodels.HeaderFooterConfig) error
	SaveNavigationItems(ctx context.Context, tenantID id.TenantID, items []tenantmodels.NavigationItem) error
}

// PageStore defines methods for seeding pages
type PageStore interface {
	SavePage(ctx context.Context, page *pagemodels.Page) error
	SaveSections(ctx context.Context, pageID id.PageID, sections []pagemodels.Section) error
}

// Seeder populates stores with demo storefronts
type Seeder struct {
	tenants  TenantStore
	branding BrandingStore
	pages    PageStore
	logger   *slog.Logger
}

// New creates a new seeder
func New(tenants TenantStore, branding BrandingStore, pages PageStore, logger *slog.Logger) *Seeder {
	return &Seeder{
		tenants:  tenants,
		branding: branding,
		pages:    pages,
		logger:   logger,
	}
}

// fixture is the YAML shape of a seed file.
type fixture struct {
	Tenants []tenantFixture `yaml:"tenants"`
}

type tenantFixture struct {
	Name    string        `yaml:"name"`
	Slug    string        `yaml:"slug"`
	LogoURL string        `yaml:"logo_url"`
	Theme   *themeFixture `yaml:"theme"`
	Nav     []navFixture  `yaml:"navigation"`
	Pages   []pageFixture `yaml:"pages"`
}

type themeFixture struct {
	Colors     map[string]string `yaml:"colors"`
	Typography map[string]string `yaml:"typography"`
	Layout     map[string]string `yaml:"layout"`
}

type navFixture struct {
	Location  string `yaml:"location"`
	Label     string `yaml:"label"`
	URL       string `yaml:"url"`
	SortOrder int    `yaml:"sort_order"`
}

type pageFixture struct {
	Slug       string           `yaml:"slug"`
	Type       string           `yaml:"type"`
	Title      string           `yaml:"title"`
	ShowHeader *bool            `yaml:"show_header"`
	ShowFooter *bool            `yaml:"show_footer"`
	Sections   []sectionFixture `yaml:"sections"`
}

type sectionFixture struct {
	Type      string         `yaml:"type"`
	Config    map[string]any `yaml:"config"`
	Visible   *bool          `yaml:"visible"`
	SortOrder int            `yaml:"sort_order"`
	Position  string         `yaml:"position"`
}

// SeedFromFile loads a YAML fixture and seeds every storefront in it.
func (s *Seeder) SeedFromFile(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed fixture: %w", err)
	}
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse seed fixture: %w", err)
	}
	for _, t := range f.Tenants {
		if err := s.seedTenant(ctx, t); err != nil {
			return fmt.Errorf("seed tenant %q: %w", t.Slug, err)
		}
	}
	s.logger.Info("seed fixture applied", "path", path, "tenants", len(f.Tenants))
	return nil
}

// SeedDemo populates the stores with a small built-in storefront, enough to
// browse and check out locally without a fixture file.
func (s *Seeder) SeedDemo(ctx context.Context) error {
	s.logger.Info("seeding demo storefronts...")

	demo := fixture{Tenants: []tenantFixture{
		{
			Name: "Bombay Bazaar",
			Slug: "bombay",
			Theme: &themeFixture{
				Colors: map[string]string{"primary": "#b3124f", "background": "#fff8f0", "accent": "#f5b301"},
			},
			Nav: []navFixture{
				{Location: "header", Label: "Home", URL: "/", SortOrder: 1},
				{Location: "header", Label: "Sarees", URL: "/sarees", SortOrder: 2},
				{Location: "footer", Label: "About", URL: "/about", SortOrder: 1},
			},
			Pages: []pageFixture{
				{
					Slug: "home", Type: "homepage", Title: "Welcome to Bombay Bazaar",
					Sections: []sectionFixture{
						{Type: "hero", SortOrder: 1, Config: map[string]any{"title": "Handloom season is here"}},
						{Type: "product_grid", SortOrder: 2, Config: map[string]any{"heading": "New arrivals"}},
					},
				},
				{
					Slug: "sarees", Type: "category", Title: "Sarees",
					Sections: []sectionFixture{
						{Type: "rich_text", SortOrder: 1, Position: "above", Config: map[string]any{"body": "Woven in small batches."}},
					},
				},
			},
		},
		{
			Name: "Calcutta Crafts",
			Slug: "calcutta",
			Pages: []pageFixture{
				{Slug: "home", Type: "homepage", Title: "Calcutta Crafts"},
			},
		},
	}}

	for _, t := range demo.Tenants {
		if err := s.seedTenant(ctx, t); err != nil {
			return fmt.Errorf("seed demo tenant %q: %w", t.Slug, err)
		}
	}

	s.logger.Info("demo storefronts seeded", "tenants", len(demo.Tenants))
	return nil
}

func (s *Seeder) seedTenant(ctx context.Context, t tenantFixture) error {
	slug, err := id.ParseSlug(t.Slug)
	if err != nil {
		return fmt.Errorf("invalid slug: %w", err)
	}
	tenant, err := tenantmodels.NewTenant(id.TenantID(uuid.New()), t.Name, slug, time.Now())
	if err != nil {
		return err
	}
	if err := tenant.Activate(time.Now()); err != nil {
		return err
	}
	tenant.LogoURL = t.LogoURL
	if err := s.tenants.CreateIfSlugAvailable(ctx, tenant); err != nil {
		return err
	}

	if t.Theme != nil {
		theme := tenantmodels.Theme{Colors: t.Theme.Colors, Typography: t.Theme.Typography, Layout: t.Theme.Layout}
		if err := s.branding.SaveTheme(ctx, tenant.ID, theme); err != nil {
			return err
		}
	}

	if len(t.Nav) > 0 {
		items := make([]tenantmodels.NavigationItem, 0, len(t.Nav))
		for _, n := range t.Nav {
			items = append(items, tenantmodels.NavigationItem{
				ID:        id.NavItemID(uuid.New()),
				TenantID:  tenant.ID,
				Location:  tenantmodels.NavLocation(n.Location),
				Label:     n.Label,
				URL:       n.URL,
				SortOrder: n.SortOrder,
			})
		}
		if err := s.branding.SaveNavigationItems(ctx, tenant.ID, items); err != nil {
			return err
		}
	}

	for _, p := range t.Pages {
		if err := s.seedPage(ctx, tenant.ID, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedPage(ctx context.Context, tenantID id.TenantID, p pageFixture) error {
	page := &pagemodels.Page{
		ID:         id.PageID(uuid.New()),
		TenantID:   tenantID,
		Slug:       id.Slug(p.Slug),
		Type:       pagemodels.PageType(p.Type),
		Title:      p.Title,
		ShowHeader: boolOr(p.ShowHeader, true),
		ShowFooter: boolOr(p.ShowFooter, true),
		Published:  true,
	}
	if page.Type == "" {
		page.Type = pagemodels.PageTypeStandard
	}
	if err := s.pages.SavePage(ctx, page); err != nil {
		return err
	}

	if len(p.Sections) == 0 {
		return nil
	}
	sections := make([]pagemodels.Section, 0, len(p.Sections))
	for _, sec := range p.Sections {
		sections = append(sections, pagemodels.Section{
			ID:        id.SectionID(uuid.New()),
			PageID:    page.ID,
			Type:      sec.Type,
			Config:    sec.Config,
			Visible:   boolOr(sec.Visible, true),
			SortOrder: sec.SortOrder,
			Position:  pagemodels.SectionPosition(sec.Position),
		})
	}
	return s.pages.SaveSections(ctx, page.ID, sections)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
