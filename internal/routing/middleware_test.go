package routing

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"extendbee/internal/platform/config"
	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
	dErrors "extendbee/pkg/domain-errors"
)

type MiddlewareSuite struct {
	suite.Suite
	mw *Middleware
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupTest() {
	resolver := NewResolver(config.DefaultRouting())
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.mw = NewMiddleware(resolver, stubSnapshots{known: "bombay"}, nil, nil, logger)
}

func (s *MiddlewareSuite) TestInjectsSnapshotAndLinks() {
	var gotSnapshot *models.Snapshot
	var gotLinks Links
	handler := s.mw.ResolveTenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSnapshot, _ = SnapshotFrom(r.Context())
		gotLinks, _ = LinksFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "http://bombay.extendbee.com/catalog", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(gotSnapshot)
	s.Equal(id.Slug("bombay"), gotSnapshot.Tenant.Slug)
	s.Equal("/catalog", gotLinks.Catalog(), "subdomain mode links carry no prefix")
}

func (s *MiddlewareSuite) TestPathModeLinksArePrefixed() {
	var gotLinks Links
	handler := s.mw.ResolveTenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLinks, _ = LinksFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "http://extendbee.com/store/bombay/catalog", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("/store/bombay/catalog", gotLinks.Catalog())
}

func (s *MiddlewareSuite) TestNoCandidateIsNotFound() {
	handler := s.mw.ResolveTenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.FailNow("handler must not run without a tenant")
	}))

	req := httptest.NewRequest(http.MethodGet, "http://www.extendbee.com/about", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *MiddlewareSuite) TestUnknownTenantIsNotFound() {
	handler := s.mw.ResolveTenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.FailNow("handler must not run for an unknown tenant")
	}))

	req := httptest.NewRequest(http.MethodGet, "http://ghost.extendbee.com/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Equal(http.StatusNotFound, rec.Code)
}

// stubSnapshots knows exactly one tenant.
type stubSnapshots struct {
	known id.Slug
}

func (s stubSnapshots) Snapshot(_ context.Context, slug id.Slug) (*models.Snapshot, error) {
	if slug != s.known {
		return nil, dErrors.New(dErrors.CodeTenantNotFound, "store not found")
	}
	return &models.Snapshot{
		Tenant:       &models.Tenant{ID: id.TenantID(uuid.New()), Slug: slug, Status: models.TenantStatusActive},
		Theme:        models.DefaultTheme(),
		HeaderFooter: models.DefaultHeaderFooter(),
	}, nil
}
