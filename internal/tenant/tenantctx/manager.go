// Package tenantctx tracks which tenant a session is operating under. A
// Manager moves through idle, loading, ready, and error states as slugs are
// set, loads snapshots asynchronously, and keeps the theme projector in sync
// with the tenant that is actually current.
package tenantctx

import (
	"context"
	"log/slog"
	"sync"

	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
)

// State is the lifecycle phase of a Manager.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// SnapshotLoader resolves a slug into a render-ready snapshot.
type SnapshotLoader interface {
	Snapshot(ctx context.Context, slug id.Slug) (*models.Snapshot, error)
}

// View is a point-in-time copy of a Manager's state.
type View struct {
	State    State
	Slug     id.Slug
	Snapshot *models.Snapshot
	Err      error
}

// Manager serializes tenant switches for one session. Every SetSlug starts
// a tagged load; a load's result is applied only if its tag still matches
// the most recent request, so a slow earlier load can never overwrite a
// faster later one regardless of arrival order.
type Manager struct {
	loader    SnapshotLoader
	projector *ThemeProjector
	logger    *slog.Logger

	mu       sync.Mutex
	state    State
	slug     id.Slug
	epoch    uint64
	snapshot *models.Snapshot
	err      error
	release  func()
}

// NewManager constructs an idle Manager. projector may be nil when theme
// projection is not wanted.
func NewManager(loader SnapshotLoader, projector *ThemeProjector, logger *slog.Logger) *Manager {
	return &Manager{
		loader:    loader,
		projector: projector,
		logger:    logger,
		state:     StateIdle,
	}
}

// SetSlug requests a switch to the given tenant. The load runs in the
// background; the returned channel closes once this particular load has
// settled, whether its result was applied or discarded as stale.
func (m *Manager) SetSlug(ctx context.Context, slug id.Slug) <-chan struct{} {
	m.mu.Lock()
	m.epoch++
	epoch := m.epoch
	m.state = StateLoading
	m.slug = slug
	m.snapshot = nil
	m.err = nil
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		snap, err := m.loader.Snapshot(ctx, slug)
		m.settle(epoch, slug, snap, err)
	}()
	return done
}

// settle applies a finished load if it is still the freshest request.
func (m *Manager) settle(epoch uint64, slug id.Slug, snap *models.Snapshot, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.epoch {
		m.logger.Debug("discarding stale tenant load", "slug", slug)
		return
	}

	if err != nil {
		m.state = StateError
		m.err = err
		m.releaseLocked()
		return
	}

	m.state = StateReady
	m.snapshot = snap
	m.releaseLocked()
	if m.projector != nil {
		m.release = m.projector.Apply(slug, snap.Theme)
	}
}

// Clear returns the Manager to idle and withdraws any projected theme.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch++
	m.state = StateIdle
	m.slug = ""
	m.snapshot = nil
	m.err = nil
	m.releaseLocked()
}

// Current returns a copy of the Manager's state.
func (m *Manager) Current() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return View{State: m.state, Slug: m.slug, Snapshot: m.snapshot, Err: m.err}
}

// ThemeVars returns the style variables projected for this session's current
// tenant. Empty unless the Manager is ready.
func (m *Manager) ThemeVars() map[string]string {
	m.mu.Lock()
	projector, ready := m.projector, m.state == StateReady
	m.mu.Unlock()

	if projector == nil || !ready {
		return map[string]string{}
	}
	return projector.Vars()
}

func (m *Manager) releaseLocked() {
	if m.release != nil {
		m.release()
		m.release = nil
	}
}
