package session

import (
	"sync"

	"quizhub/internal/models"

	"github.com/google/uuid"
)

// Manager is an in-memory registry of live sessions, keyed by opaque IDs.
// Each attempt is private to its session; the manager shares nothing
// between them.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) Create(quiz models.Quiz) (string, *Session) {
	id := uuid.NewString()
	sess := New(quiz)
	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()
	return id, sess
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Remove drops a session from the registry, abandoning it if still live.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		sess.Abandon()
	}
}
