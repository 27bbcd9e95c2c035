package seeder

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	pagestore "extendbee/internal/page/store"
	brandingstore "extendbee/internal/tenant/store/branding"
	tenantstore "extendbee/internal/tenant/store/tenant"
)

type SeederSuite struct {
	suite.Suite
	ctx      context.Context
	tenants  *tenantstore.InMemory
	branding *brandingstore.InMemory
	pages    *pagestore.InMemory
	seeder   *Seeder
}

func TestSeederSuite(t *testing.T) {
	suite.Run(t, new(SeederSuite))
}

func (s *SeederSuite) SetupTest() {
	s.ctx = context.Background()
	s.tenants = tenantstore.NewInMemory()
	s.branding = brandingstore.NewInMemory()
	s.pages = pagestore.NewInMemory()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.seeder = New(s.tenants, s.branding, s.pages, logger)
}

func (s *SeederSuite) TestSeedDemoCreatesBrowsableStorefronts() {
	s.Require().NoError(s.seeder.SeedDemo(s.ctx))

	tenant, err := s.tenants.FindBySlug(s.ctx, "bombay")
	s.Require().NoError(err)
	s.True(tenant.IsActive(), "seeded tenants must be publicly resolvable")

	theme, err := s.branding.ActiveTheme(s.ctx, tenant.ID)
	s.Require().NoError(err)
	s.Equal("#b3124f", theme.Colors["primary"])

	home, err := s.pages.FindPublishedHomepage(s.ctx, tenant.ID)
	s.Require().NoError(err)
	sections, err := s.pages.VisibleSections(s.ctx, home.ID)
	s.Require().NoError(err)
	s.NotEmpty(sections)
}

func (s *SeederSuite) TestSeedDemoIsNotIdempotentBySlug() {
	s.Require().NoError(s.seeder.SeedDemo(s.ctx))
	s.Error(s.seeder.SeedDemo(s.ctx), "second run collides on slugs")
}

func (s *SeederSuite) TestSeedFromFile() {
	path := filepath.Join(s.T().TempDir(), "seed.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
tenants:
  - name: Madras Mart
    slug: madras
    theme:
      colors:
        primary: "#006a4e"
    navigation:
      - location: header
        label: Home
        url: /
        sort_order: 1
    pages:
      - slug: home
        type: homepage
        title: Madras Mart
        sections:
          - type: hero
            sort_order: 1
            config:
              title: Fresh off the loom
`), 0o600))

	s.Require().NoError(s.seeder.SeedFromFile(s.ctx, path))

	tenant, err := s.tenants.FindBySlug(s.ctx, "madras")
	s.Require().NoError(err)
	items, err := s.branding.NavigationItems(s.ctx, tenant.ID)
	s.Require().NoError(err)
	s.Len(items, 1)

	home, err := s.pages.FindPublishedHomepage(s.ctx, tenant.ID)
	s.Require().NoError(err)
	s.Equal("Madras Mart", home.Title)
}

func (s *SeederSuite) TestFixtureWithBadSlugFails() {
	path := filepath.Join(s.T().TempDir(), "seed.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
tenants:
  - name: Bad
    slug: "Not A Slug"
`), 0o600))

	s.Error(s.seeder.SeedFromFile(s.ctx, path))
}
