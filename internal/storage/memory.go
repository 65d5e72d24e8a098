// Package storage содержит реализации хранилища сессий: быстрое хранилище
// в памяти, долговременное на SQLite и слоеную комбинацию двух.
package storage

import (
	"sync"

	"hr-interview-backend/internal/session"
)

// MemoryStore хранит сессии в памяти процесса. Load и Save работают
// с копиями, поэтому вызывающий код не может изменить хранимое
// состояние мимо Save.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*session.Session),
	}
}

func (m *MemoryStore) Load(token string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return sess.Clone(), nil
}

func (m *MemoryStore) Save(sess *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.Token] = sess.Clone()
	return nil
}

func (m *MemoryStore) Delete(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemoryStore) All() []*session.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*session.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		out = append(out, sess.Clone())
	}
	return out
}
