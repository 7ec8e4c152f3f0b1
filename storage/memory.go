package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store, useful for tests and ephemeral sessions.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// NewFailingMemoryStore returns a store whose every operation fails with err.
func NewFailingMemoryStore(err error) *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), err: err}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

// SetError makes subsequent operations fail with err; nil restores normal behavior.
func (m *MemoryStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
