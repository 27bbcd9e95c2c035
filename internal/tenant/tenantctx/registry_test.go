package tenantctx

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
)

// instantLoader resolves every slug immediately with a slug-derived theme.
type instantLoader struct{}

func (instantLoader) Snapshot(_ context.Context, slug id.Slug) (*models.Snapshot, error) {
	return &models.Snapshot{
		Tenant: &models.Tenant{Name: "Shop " + slug.String(), Slug: slug},
		Theme:  models.Theme{Colors: map[string]string{"primary": "#" + slug.String()}},
	}, nil
}

type RegistrySuite struct {
	suite.Suite
	ctx    context.Context
	logger *slog.Logger
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func (s *RegistrySuite) ready(m *Manager, slug id.Slug) {
	<-m.SetSlug(s.ctx, slug)
	s.Require().Equal(StateReady, m.Current().State)
}

func (s *RegistrySuite) TestSameSessionSharesManager() {
	registry := NewRegistry(instantLoader{}, s.logger)
	sessionID := id.NewCartID()

	first := registry.ForSession(sessionID)
	second := registry.ForSession(sessionID)
	s.Same(first, second)
}

func (s *RegistrySuite) TestSessionsAreIsolated() {
	registry := NewRegistry(instantLoader{}, s.logger)

	bombay := registry.ForSession(id.NewCartID())
	calcutta := registry.ForSession(id.NewCartID())
	s.NotSame(bombay, calcutta)

	s.ready(bombay, "bombay")
	s.ready(calcutta, "calcutta")

	s.Equal(id.Slug("bombay"), bombay.Current().Slug)
	s.Equal(id.Slug("calcutta"), calcutta.Current().Slug)
	s.Equal("#bombay", bombay.ThemeVars()["--color-primary"])
	s.Equal("#calcutta", calcutta.ThemeVars()["--color-primary"])
}

func (s *RegistrySuite) TestFullRegistryEvictsLongestIdleSession() {
	registry := NewRegistry(instantLoader{}, s.logger, WithSessionCap(1))

	idle := registry.ForSession(id.NewCartID())
	s.ready(idle, "bombay")
	s.NotEmpty(idle.ThemeVars())

	fresh := registry.ForSession(id.NewCartID())
	s.NotSame(idle, fresh)

	view := idle.Current()
	s.Equal(StateIdle, view.State, "evicted session's context resets")
	s.Empty(idle.ThemeVars(), "evicted session's projection is withdrawn")
}
