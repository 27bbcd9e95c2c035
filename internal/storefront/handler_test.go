package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"extendbee/internal/cart/session"
	"extendbee/internal/page/compose"
	pagemodels "extendbee/internal/page/models"
	pageservice "extendbee/internal/page/service"
	pagestore "extendbee/internal/page/store"
	"extendbee/internal/platform/config"
	"extendbee/internal/routing"
	tenantmodels "extendbee/internal/tenant/models"
	tenantservice "extendbee/internal/tenant/service"
	brandingstore "extendbee/internal/tenant/store/branding"
	tenantstore "extendbee/internal/tenant/store/tenant"
	"extendbee/internal/tenant/tenantctx"
	id "extendbee/pkg/domain"
)

type StorefrontSuite struct {
	suite.Suite
	ctx      context.Context
	router   chi.Router
	pages    *pagestore.InMemory
	tenants  *tenantstore.InMemory
	branding *brandingstore.InMemory
	tenantID id.TenantID
}

func TestStorefrontSuite(t *testing.T) {
	suite.Run(t, new(StorefrontSuite))
}

func (s *StorefrontSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	s.tenants = tenantstore.NewInMemory()
	s.branding = brandingstore.NewInMemory()
	tenantSvc := tenantservice.New(s.tenants, s.branding, nil, nil, logger)

	s.tenantID = s.addTenant("Bombay Bazaar", "bombay")

	s.pages = pagestore.NewInMemory()
	resolver := pageservice.NewResolver(s.pages, nil, nil, logger)
	engine := compose.NewEngine(compose.DefaultRegistry(), compose.DefaultPageTypes(), nil, nil, logger)

	tenantMW := routing.NewMiddleware(routing.NewResolver(config.DefaultRouting()), tenantSvc, nil, nil, logger)
	sessions := session.NewManager([]byte("storefront-test-key"), time.Hour, logger)
	contexts := tenantctx.NewRegistry(tenantSvc, logger)
	handler := New(resolver, engine, sessions, contexts, logger)

	storefront := chi.NewRouter()
	storefront.Use(tenantMW.ResolveTenant)
	handler.Register(storefront)

	s.router = chi.NewRouter()
	s.router.Mount("/store/{slug}", storefront)
	s.router.Mount("/", storefront)
}

func (s *StorefrontSuite) addTenant(name, slug string) id.TenantID {
	tenant, err := tenantmodels.NewTenant(id.TenantID(uuid.New()), name, id.Slug(slug), time.Now())
	s.Require().NoError(err)
	tenant.Status = tenantmodels.TenantStatusActive
	s.Require().NoError(s.tenants.CreateIfSlugAvailable(s.ctx, tenant))
	return tenant.ID
}

func (s *StorefrontSuite) seedHomepage() *pagemodels.Page {
	page := &pagemodels.Page{
		ID:         id.PageID(uuid.New()),
		TenantID:   s.tenantID,
		Slug:       "home",
		Type:       pagemodels.PageTypeHomepage,
		Title:      "Welcome",
		ShowHeader: true,
		ShowFooter: true,
		Published:  true,
	}
	s.Require().NoError(s.pages.SavePage(s.ctx, page))
	s.Require().NoError(s.pages.SaveSections(s.ctx, page.ID, []pagemodels.Section{
		{ID: id.SectionID(uuid.New()), PageID: page.ID, Type: "hero", Visible: true, SortOrder: 1},
	}))
	return page
}

func (s *StorefrontSuite) get(url string) (*httptest.ResponseRecorder, pageResponse) {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var body pageResponse
	if rec.Code == http.StatusOK {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func (s *StorefrontSuite) TestHomepageUnderSubdomainMode() {
	s.seedHomepage()

	rec, body := s.get("http://bombay.extendbee.com/")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Bombay Bazaar", body.Tenant.Name)
	s.Equal(routing.ModeSubdomain, body.RoutingMode)
	s.Equal("/cart", body.Links.Cart, "subdomain mode links carry no prefix")
	s.Require().Len(body.Page.Blocks, 1)
	s.Equal("hero", body.Page.Blocks[0].Kind)
}

func (s *StorefrontSuite) TestSamePageUnderPathMode() {
	s.seedHomepage()

	rec, body := s.get("http://extendbee.com/store/bombay")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(routing.ModePath, body.RoutingMode)
	s.Equal("/store/bombay/cart", body.Links.Cart)
	s.Require().Len(body.Page.Blocks, 1)
	s.Equal("hero", body.Page.Blocks[0].Kind, "both modes render the same content")
}

func (s *StorefrontSuite) TestUnknownSlugFallsBackToHomepage() {
	s.seedHomepage()

	rec, body := s.get("http://bombay.extendbee.com/no-such-page")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Welcome", body.Page.PageTitle)
}

func (s *StorefrontSuite) TestNoPagesIsPageNotFound() {
	rec, _ := s.get("http://bombay.extendbee.com/")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *StorefrontSuite) TestUnknownTenantIsNotFound() {
	s.seedHomepage()

	rec, _ := s.get("http://ghost.extendbee.com/")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *StorefrontSuite) TestContextEndpointSkipsPageResolution() {
	rec, body := s.getContext("http://bombay.extendbee.com/storefront/context", nil)

	s.Equal(http.StatusOK, rec.Code, "context resolves even when the tenant has no pages yet")
	s.Equal(id.Slug("bombay"), body.Tenant.Slug)
	s.NotEmpty(body.Theme.Colors, "default theme fills in for missing branding")
}

func (s *StorefrontSuite) TestMixedCasePageSlugResolvesExactPage() {
	s.seedHomepage()
	about := &pagemodels.Page{
		ID:        id.PageID(uuid.New()),
		TenantID:  s.tenantID,
		Slug:      "about",
		Type:      pagemodels.PageTypeStandard,
		Title:     "About Us",
		Published: true,
	}
	s.Require().NoError(s.pages.SavePage(s.ctx, about))

	rec, body := s.get("http://bombay.extendbee.com/About")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("About Us", body.Page.PageTitle, "request casing must not force the homepage fallback")
}

func (s *StorefrontSuite) getContext(url string, cookies []*http.Cookie) (*httptest.ResponseRecorder, contextResponse) {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var body contextResponse
	if rec.Code == http.StatusOK {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func (s *StorefrontSuite) TestContextEndpointProjectsThemeVariables() {
	s.Require().NoError(s.branding.SaveTheme(s.ctx, s.tenantID, tenantmodels.Theme{
		Colors: map[string]string{"primary": "#8b0000"},
	}))

	rec, body := s.getContext("http://bombay.extendbee.com/storefront/context", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("#8b0000", body.Theme.Colors["primary"])
	s.Equal("#8b0000", body.ThemeVariables["--color-primary"])
}

func (s *StorefrontSuite) TestTenantSwitchReprojectsTheme() {
	calcuttaID := s.addTenant("Calcutta Crafts", "calcutta")
	s.Require().NoError(s.branding.SaveTheme(s.ctx, s.tenantID, tenantmodels.Theme{
		Colors: map[string]string{"primary": "#8b0000"},
	}))
	s.Require().NoError(s.branding.SaveTheme(s.ctx, calcuttaID, tenantmodels.Theme{
		Colors: map[string]string{"primary": "#004225"},
	}))

	rec, body := s.getContext("http://bombay.extendbee.com/storefront/context", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("#8b0000", body.ThemeVariables["--color-primary"])

	// The same browser session navigates to another store; its projection
	// must follow the tenant actually being served.
	rec, body = s.getContext("http://calcutta.extendbee.com/storefront/context", rec.Result().Cookies())
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(id.Slug("calcutta"), body.Tenant.Slug)
	s.Equal("#004225", body.ThemeVariables["--color-primary"])
}
