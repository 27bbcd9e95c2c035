// Package session binds a browser to its cart through a signed cookie.
// The cookie carries only the cart id; line items live server-side.
package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "extendbee/pkg/domain"
)

// CookieName is the cart session cookie. One cookie spans every tenant on
// the platform; isolation happens in the store's tenant partitions.
const CookieName = "bee_cart"

type cartClaims struct {
	CartID string `json:"crt"`
	jwt.RegisteredClaims
}

// Manager mints and verifies cart session cookies.
type Manager struct {
	key    []byte
	ttl    time.Duration
	logger *slog.Logger
}

// NewManager constructs a Manager signing with the given key. ttl bounds
// both the token and the cookie lifetime.
func NewManager(key []byte, ttl time.Duration, logger *slog.Logger) *Manager {
	return &Manager{key: key, ttl: ttl, logger: logger}
}

// EnsureCartID returns the request's cart id, minting a fresh session when
// the cookie is absent, expired, or fails verification. A bad cookie is not
// an error to the shopper; they simply start with an empty cart.
func (m *Manager) EnsureCartID(w http.ResponseWriter, r *http.Request) id.CartID {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if cartID, err := m.verify(cookie.Value); err == nil {
			return cartID
		} else {
			m.logger.DebugContext(r.Context(), "cart cookie rejected, minting new session", "error", err)
		}
	}

	cartID := id.NewCartID()
	token, err := m.mint(cartID)
	if err != nil {
		// Signing only fails on a broken key; the request still gets a cart,
		// it just will not survive this response.
		m.logger.ErrorContext(r.Context(), "cart session mint failed", "error", err)
		return cartID
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return cartID
}

func (m *Manager) mint(cartID id.CartID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cartClaims{
		CartID: cartID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign cart session: %w", err)
	}
	return signed, nil
}

func (m *Manager) verify(raw string) (id.CartID, error) {
	var claims cartClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return id.CartID{}, fmt.Errorf("parse cart session: %w", err)
	}
	cartID, err := id.ParseCartID(claims.CartID)
	if err != nil {
		return id.CartID{}, fmt.Errorf("parse cart id: %w", err)
	}
	return cartID, nil
}
