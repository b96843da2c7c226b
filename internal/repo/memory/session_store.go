package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore — сессии в памяти процесса (без Postgres и в тестах).
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

func (m *SessionStore) Create(_ context.Context, s *domain.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("session is empty or id is required")
	}
	if s.UserID == "" {
		return errors.New("user_id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

// Get — копия сессии; (nil, nil), если её нет.
func (m *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *SessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *SessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *SessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
