package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
	"extendbee/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemorySuite) makeTenant(slug string) *models.Tenant {
	parsed, err := id.ParseSlug(slug)
	s.Require().NoError(err)
	t, err := models.NewTenant(id.TenantID(uuid.New()), "Shop "+slug, parsed, time.Now())
	s.Require().NoError(err)
	return t
}

func (s *InMemorySuite) TestCreateAndFindBySlug() {
	t := s.makeTenant("bombay")
	s.Require().NoError(s.store.CreateIfSlugAvailable(s.ctx, t))

	found, err := s.store.FindBySlug(s.ctx, t.Slug)
	s.Require().NoError(err)
	s.Equal(t.ID, found.ID)
	s.Equal(t.Slug, found.Slug)
}

func (s *InMemorySuite) TestSlugUniqueness() {
	s.Require().NoError(s.store.CreateIfSlugAvailable(s.ctx, s.makeTenant("bombay")))

	err := s.store.CreateIfSlugAvailable(s.ctx, s.makeTenant("bombay"))
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *InMemorySuite) TestFindMissingReturnsNotFound() {
	_, err := s.store.FindBySlug(s.ctx, id.Slug("ghost"))
	s.ErrorIs(err, ErrNotFound)

	_, err = s.store.FindByID(s.ctx, id.TenantID(uuid.New()))
	s.ErrorIs(err, ErrNotFound)
}

func (s *InMemorySuite) TestUpdate() {
	t := s.makeTenant("bombay")
	s.Require().NoError(s.store.CreateIfSlugAvailable(s.ctx, t))

	s.Require().NoError(t.Activate(time.Now()))
	s.Require().NoError(s.store.Update(s.ctx, t))

	found, err := s.store.FindBySlug(s.ctx, t.Slug)
	s.Require().NoError(err)
	s.Equal(models.TenantStatusActive, found.Status)
}

func (s *InMemorySuite) TestReturnedTenantIsACopy() {
	t := s.makeTenant("bombay")
	s.Require().NoError(s.store.CreateIfSlugAvailable(s.ctx, t))

	found, err := s.store.FindBySlug(s.ctx, t.Slug)
	s.Require().NoError(err)
	found.Name = "mutated"

	again, err := s.store.FindBySlug(s.ctx, t.Slug)
	s.Require().NoError(err)
	s.NotEqual("mutated", again.Name, "store must not expose internal state")
}
