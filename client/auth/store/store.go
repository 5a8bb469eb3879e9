package store

import "sync"

// Store is a pluggable persistence layer for the session access token.
// The in-memory default is fine for tests and short-lived processes; use
// FileStore to survive restarts.
//
// Operations cannot fail on the in-memory implementation; callers must
// tolerate an absent token.
type Store interface {
	Token() (string, bool)
	SetToken(token string) error
	Clear() error
}

type memoryStore struct {
	mu    sync.RWMutex
	token string
}

func (m *memoryStore) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		return "", false
	}
	return m.token, true
}

func (m *memoryStore) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func NewMemoryStore() Store {
	return &memoryStore{}
}
