package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "extendbee/pkg/domain"
)

type TenantModelSuite struct {
	suite.Suite
	now time.Time
}

func TestTenantModelSuite(t *testing.T) {
	suite.Run(t, new(TenantModelSuite))
}

func (s *TenantModelSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *TenantModelSuite) newTenant() *Tenant {
	slug, err := id.ParseSlug("bombay")
	s.Require().NoError(err)
	t, err := NewTenant(id.TenantID(uuid.New()), "Bombay Sarees", slug, s.now)
	s.Require().NoError(err)
	return t
}

func (s *TenantModelSuite) TestNewTenantStartsPending() {
	t := s.newTenant()
	s.Equal(TenantStatusPending, t.Status)
	s.False(t.IsActive())
}

func (s *TenantModelSuite) TestLifecycle() {
	t := s.newTenant()

	s.Run("pending activates", func() {
		s.NoError(t.Activate(s.now))
		s.True(t.IsActive())
	})

	s.Run("active cannot re-activate", func() {
		s.Error(t.Activate(s.now))
	})

	s.Run("active suspends", func() {
		s.NoError(t.Suspend(s.now))
		s.Equal(TenantStatusSuspended, t.Status)
	})

	s.Run("suspended reactivates", func() {
		s.NoError(t.Activate(s.now))
		s.True(t.IsActive())
	})

	s.Run("closed is terminal", func() {
		s.NoError(t.Close(s.now))
		s.Error(t.Activate(s.now))
		s.Error(t.Close(s.now))
	})
}

func (s *TenantModelSuite) TestNewTenantValidation() {
	slug, _ := id.ParseSlug("bombay")
	_, err := NewTenant(id.TenantID(uuid.New()), "", slug, s.now)
	s.Error(err)

	_, err = NewTenant(id.TenantID(uuid.New()), "Bombay", id.Slug(""), s.now)
	s.Error(err)
}

func TestSortNavigationItemsIsStable(t *testing.T) {
	items := []NavigationItem{
		{Label: "c", SortOrder: 2},
		{Label: "a", SortOrder: 1},
		{Label: "b1", SortOrder: 3},
		{Label: "b2", SortOrder: 3},
		{Label: "b3", SortOrder: 3},
	}

	SortNavigationItems(items)

	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.Label
	}
	// Equal sort orders keep original fetch order.
	if got[0] != "a" || got[1] != "c" || got[2] != "b1" || got[3] != "b2" || got[4] != "b3" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestDefaultThemeIsRenderable(t *testing.T) {
	theme := DefaultTheme()
	if len(theme.Colors) == 0 || len(theme.Typography) == 0 {
		t.Fatal("default theme must carry enough variables to render")
	}
}
