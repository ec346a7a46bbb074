package session

import (
	"sync"

	"github.com/google/uuid"
)

// DialFunc builds a gateway acting on behalf of the user who presented the
// given bearer token. Identity resolution itself belongs to the backend.
type DialFunc func(token string) Gateway

// Manager owns the live sessions, keyed by session id.
type Manager struct {
	dial DialFunc

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager that uses dial to reach the message
// service.
func NewManager(dial DialFunc) *Manager {
	return &Manager{
		dial:     dial,
		sessions: make(map[string]*Session),
	}
}

// Create builds a new session for the given user and returns its id.
func (m *Manager) Create(userID int64, token string) (string, *Session) {
	id := "sess_" + uuid.New().String()[:8]
	sess := New(userID, m.dial(token))

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()
	return id, sess
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Dispose closes and removes the session with the given id. It reports
// whether a session existed.
func (m *Manager) Dispose(id string) bool {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		sess.Close()
	}
	return ok
}

// CloseAll disposes every live session. Called on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
