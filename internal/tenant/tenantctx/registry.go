package tenantctx

import (
	"log/slog"
	"sync"
	"time"

	id "extendbee/pkg/domain"
)

const defaultSessionCap = 10000

// Registry hands out one Manager per storefront session, keyed by the cart
// session id. Requests from the same browser share lifecycle state while
// sessions stay isolated; each Manager owns its own theme projection.
type Registry struct {
	loader SnapshotLoader
	logger *slog.Logger
	cap    int

	mu       sync.Mutex
	sessions map[id.CartID]*sessionEntry
}

type sessionEntry struct {
	manager  *Manager
	lastSeen time.Time
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithSessionCap bounds how many session managers are kept before the
// longest-idle one is evicted.
func WithSessionCap(n int) RegistryOption {
	return func(r *Registry) { r.cap = n }
}

// NewRegistry constructs an empty Registry over the given loader.
func NewRegistry(loader SnapshotLoader, logger *slog.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		loader:   loader,
		logger:   logger,
		cap:      defaultSessionCap,
		sessions: make(map[id.CartID]*sessionEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ForSession returns the session's Manager, creating it on first use. A full
// registry evicts the longest-idle session; eviction only resets that
// session's cached tenant context, never its cart.
func (r *Registry) ForSession(sessionID id.CartID) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[sessionID]; ok {
		e.lastSeen = time.Now()
		return e.manager
	}

	if len(r.sessions) >= r.cap {
		r.evictOldestLocked()
	}
	m := NewManager(r.loader, NewThemeProjector(), r.logger)
	r.sessions[sessionID] = &sessionEntry{manager: m, lastSeen: time.Now()}
	return m
}

func (r *Registry) evictOldestLocked() {
	var (
		oldestID id.CartID
		oldest   *sessionEntry
	)
	for sessionID, e := range r.sessions {
		if oldest == nil || e.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = sessionID, e
		}
	}
	if oldest == nil {
		return
	}
	oldest.manager.Clear()
	delete(r.sessions, oldestID)
	r.logger.Debug("evicted idle tenant context session")
}
