package session

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SessionSuite struct {
	suite.Suite
	manager *Manager
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.manager = NewManager([]byte("test-signing-key"), time.Hour, logger)
}

func (s *SessionSuite) TestMintsCookieForFreshRequest() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	cartID := s.manager.EnsureCartID(rec, req)
	s.False(cartID.IsNil())

	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal(CookieName, cookies[0].Name)
	s.True(cookies[0].HttpOnly)
}

func (s *SessionSuite) TestReturnsSameCartIDOnNextRequest() {
	rec := httptest.NewRecorder()
	first := httptest.NewRequest(http.MethodGet, "/", nil)
	cartID := s.manager.EnsureCartID(rec, first)

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.AddCookie(rec.Result().Cookies()[0])
	again := s.manager.EnsureCartID(httptest.NewRecorder(), second)

	s.Equal(cartID, again)
}

func (s *SessionSuite) TestGarbageCookieMintsFreshSession() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	rec := httptest.NewRecorder()

	cartID := s.manager.EnsureCartID(rec, req)
	s.False(cartID.IsNil())
	s.Require().Len(rec.Result().Cookies(), 1, "a replacement cookie is set")
}

func (s *SessionSuite) TestForeignKeySignatureIsRejected() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	other := NewManager([]byte("different-key"), time.Hour, logger)

	rec := httptest.NewRecorder()
	first := httptest.NewRequest(http.MethodGet, "/", nil)
	cartID := other.EnsureCartID(rec, first)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	minted := s.manager.EnsureCartID(httptest.NewRecorder(), req)

	s.NotEqual(cartID, minted, "a token signed with another key must not be honored")
}

func (s *SessionSuite) TestExpiredTokenMintsFreshSession() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	shortLived := NewManager([]byte("test-signing-key"), -time.Minute, logger)

	rec := httptest.NewRecorder()
	first := httptest.NewRequest(http.MethodGet, "/", nil)
	expired := shortLived.EnsureCartID(rec, first)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	minted := s.manager.EnsureCartID(httptest.NewRecorder(), req)

	s.NotEqual(expired, minted)
}
