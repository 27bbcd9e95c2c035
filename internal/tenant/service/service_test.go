package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	brandingstore "extendbee/internal/tenant/store/branding"
	tenantstore "extendbee/internal/tenant/store/tenant"

	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
	dErrors "extendbee/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	tenants  *tenantstore.InMemory
	branding *brandingstore.InMemory
	svc      *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.tenants = tenantstore.NewInMemory()
	s.branding = brandingstore.NewInMemory()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.svc = New(s.tenants, s.branding, nil, nil, logger)
}

func (s *ServiceSuite) seedTenant(slug string, status models.TenantStatus) *models.Tenant {
	parsed, err := id.ParseSlug(slug)
	s.Require().NoError(err)
	t, err := models.NewTenant(id.TenantID(uuid.New()), "Shop "+slug, parsed, time.Now())
	s.Require().NoError(err)
	t.Status = status
	s.Require().NoError(s.tenants.CreateIfSlugAvailable(s.ctx, t))
	return t
}

func (s *ServiceSuite) TestFindBySlugReturnsActiveTenant() {
	want := s.seedTenant("bombay", models.TenantStatusActive)

	got, err := s.svc.Directory().FindBySlug(s.ctx, want.Slug)
	s.Require().NoError(err)
	s.Equal(want.ID, got.ID)
}

func (s *ServiceSuite) TestNonActiveTenantsAreHidden() {
	// A suspended or pending tenant must be indistinguishable from a missing
	// one so status never leaks to shoppers.
	for _, status := range []models.TenantStatus{
		models.TenantStatusPending,
		models.TenantStatusSuspended,
		models.TenantStatusClosed,
	} {
		t := s.seedTenant("shop-"+string(status), status)

		_, err := s.svc.Directory().FindBySlug(s.ctx, t.Slug)
		s.True(dErrors.HasCode(err, dErrors.CodeTenantNotFound), "status %s must resolve as not found", status)
		s.EqualError(err, "store not found", "error text must not hint at status %s", status)
	}
}

func (s *ServiceSuite) TestMissingTenantIsNotFound() {
	_, err := s.svc.Directory().FindBySlug(s.ctx, id.Slug("ghost"))
	s.True(dErrors.HasCode(err, dErrors.CodeTenantNotFound))
}

func (s *ServiceSuite) TestStoreFailureIsUpstream() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	dir := NewDirectory(failingTenantStore{}, nil, nil, logger)

	_, err := dir.FindBySlug(s.ctx, id.Slug("bombay"))
	s.True(dErrors.HasCode(err, dErrors.CodeUpstream), "transport failures must stay distinguishable from not-found")
}

func (s *ServiceSuite) TestSnapshotDefaultsMissingBranding() {
	t := s.seedTenant("bombay", models.TenantStatusActive)

	snap, err := s.svc.Snapshot(s.ctx, t.Slug)
	s.Require().NoError(err)
	s.Equal(t.ID, snap.Tenant.ID)
	s.Equal(models.DefaultTheme(), snap.Theme, "missing theme degrades to default")
	s.Equal(models.DefaultHeaderFooter(), snap.HeaderFooter)
	s.Empty(snap.NavItems)
}

func (s *ServiceSuite) TestSnapshotCarriesStoredBranding() {
	t := s.seedTenant("bombay", models.TenantStatusActive)

	theme := models.Theme{Colors: map[string]string{"primary": "#b3124f"}}
	s.Require().NoError(s.branding.SaveTheme(s.ctx, t.ID, theme))
	s.Require().NoError(s.branding.SaveNavigationItems(s.ctx, t.ID, []models.NavigationItem{
		{ID: id.NavItemID(uuid.New()), TenantID: t.ID, Location: models.NavLocationHeader, Label: "Sarees", URL: "/catalog", SortOrder: 2},
		{ID: id.NavItemID(uuid.New()), TenantID: t.ID, Location: models.NavLocationHeader, Label: "Home", URL: "/", SortOrder: 1},
	}))

	snap, err := s.svc.Snapshot(s.ctx, t.Slug)
	s.Require().NoError(err)
	s.Equal(theme, snap.Theme)
	s.Require().Len(snap.NavItems, 2)
	s.Equal("Home", snap.NavItems[0].Label, "navigation sorted by sort order ascending")
	s.Equal("Sarees", snap.NavItems[1].Label)
}

func (s *ServiceSuite) TestConfigLoaderDegradesFailedFetches() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	loader := NewConfigLoader(failingBrandingStore{}, nil, nil, logger)

	cfg := loader.Load(s.ctx, id.TenantID(uuid.New()))
	s.Equal(models.DefaultTheme(), cfg.Theme)
	s.Equal(models.DefaultHeaderFooter(), cfg.HeaderFooter)
	s.Empty(cfg.NavItems)
}

func (s *ServiceSuite) TestConfigLoaderDegradesOnlyFailedField() {
	t := s.seedTenant("bombay", models.TenantStatusActive)
	theme := models.Theme{Colors: map[string]string{"primary": "#b3124f"}}
	s.Require().NoError(s.branding.SaveTheme(s.ctx, t.ID, theme))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	loader := NewConfigLoader(partialBrandingStore{inner: s.branding}, nil, nil, logger)

	cfg := loader.Load(s.ctx, t.ID)
	s.Equal(theme, cfg.Theme, "healthy field keeps its value")
	s.Equal(models.DefaultHeaderFooter(), cfg.HeaderFooter, "failed field degrades alone")
}

// failingTenantStore simulates an unreachable backend.
type failingTenantStore struct{}

func (failingTenantStore) CreateIfSlugAvailable(context.Context, *models.Tenant) error {
	return errors.New("dial tcp: connection refused")
}
func (failingTenantStore) Update(context.Context, *models.Tenant) error {
	return errors.New("dial tcp: connection refused")
}
func (failingTenantStore) FindByID(context.Context, id.TenantID) (*models.Tenant, error) {
	return nil, errors.New("dial tcp: connection refused")
}
func (failingTenantStore) FindBySlug(context.Context, id.Slug) (*models.Tenant, error) {
	return nil, errors.New("dial tcp: connection refused")
}

// failingBrandingStore fails every fetch.
type failingBrandingStore struct{}

func (failingBrandingStore) ActiveTheme(context.Context, id.TenantID) (models.Theme, error) {
	return models.Theme{}, errors.New("dial tcp: connection refused")
}
func (failingBrandingStore) HeaderFooter(context.Context, id.TenantID) (models.HeaderFooterConfig, error) {
	return models.HeaderFooterConfig{}, errors.New("dial tcp: connection refused")
}
func (failingBrandingStore) NavigationItems(context.Context, id.TenantID) ([]models.NavigationItem, error) {
	return nil, errors.New("dial tcp: connection refused")
}

// partialBrandingStore passes themes through and fails chrome lookups.
type partialBrandingStore struct {
	inner *brandingstore.InMemory
}

func (p partialBrandingStore) ActiveTheme(ctx context.Context, tenantID id.TenantID) (models.Theme, error) {
	return p.inner.ActiveTheme(ctx, tenantID)
}
func (p partialBrandingStore) HeaderFooter(context.Context, id.TenantID) (models.HeaderFooterConfig, error) {
	return models.HeaderFooterConfig{}, errors.New("dial tcp: connection refused")
}
func (p partialBrandingStore) NavigationItems(ctx context.Context, tenantID id.TenantID) ([]models.NavigationItem, error) {
	return p.inner.NavigationItems(ctx, tenantID)
}
