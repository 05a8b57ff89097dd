package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns the in-process session table. Sessions are keyed by an
// opaque id carried in the signed cookie; a janitor evicts expired ones
// so abandoned sessions do not accumulate.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a fresh unauthenticated session on the registration
// view.
func (m *Manager) Create() *Session {
	now := time.Now()

	s := &Session{
		ID:        uuid.NewString(),
		View:      ViewRegister,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s

	return s
}

// Get returns the live session for id. Expired sessions are dropped and
// reported as absent.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if s.Expired(time.Now()) {
		delete(m.sessions, id)
		return nil, false
	}
	return s, true
}

// Destroy removes the session for id, if any.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of tracked sessions, expired ones included
// until the janitor sweeps them.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run sweeps expired sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep(time.Now())
		}
	}
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
		}
	}
}
