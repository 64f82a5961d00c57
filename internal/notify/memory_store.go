package notify

import (
	"context"
	"sync"
)

// MemoryStore keeps pending notifications in process memory.
// Suitable for a single server instance.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string][]Notification
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pending: make(map[string][]Notification)}
}

// Push implements Store.
func (m *MemoryStore) Push(_ context.Context, sessionID string, n Notification) error {
	if sessionID == "" {
		return ErrNoSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	q := append(m.pending[sessionID], n)
	if len(q) > MaxPending {
		q = q[len(q)-MaxPending:]
	}
	m.pending[sessionID] = q
	return nil
}

// Drain implements Store.
func (m *MemoryStore) Drain(_ context.Context, sessionID string) ([]Notification, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	q := m.pending[sessionID]
	delete(m.pending, sessionID)
	return q, nil
}
