package session

import (
	"fmt"
	"sync"

	"github.com/parkinsense/symptom-engine/pkg/logging"
)

// Manager tracks open sessions for the service shell. All methods are
// safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   logging.Logger
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logging.WithFields(logging.Fields{"component": "session_manager"}),
	}
}

// Create opens a session of the given kind and registers it.
func (m *Manager) Create(kind Kind, sampleRate int) (*Session, error) {
	if !kind.Valid() {
		return nil, NewError("", ErrCodeInvalidInput, fmt.Sprintf("unknown session kind %q", kind), nil)
	}

	sess := New(kind, sampleRate)

	m.mu.Lock()
	m.sessions[sess.ID()] = sess
	open := len(m.sessions)
	m.mu.Unlock()

	m.logger.Debug("Session created", logging.Fields{
		"session_id":    sess.ID(),
		"kind":          string(kind),
		"open_sessions": open,
	})
	return sess, nil
}

// Get returns a registered session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, NewError(id, ErrCodeNotFound, "session not found", nil)
	}
	return sess, nil
}

// Remove forgets a session. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of registered sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
