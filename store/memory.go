package store

import (
	"context"
	"sync"

	"github.com/Linskii/coffee-tracker/bo"
)

// MemoryStore is an in-process bo.Store backed by a guarded map. It is
// intended for tests and the demo command; production deployments should
// use SQLiteStore.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]*bo.State
	config *bo.Config
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*bo.State)}
}

// GetState returns a deep-enough copy of the stored state for key, or
// (nil, nil) if none exists.
func (m *MemoryStore) GetState(_ context.Context, key string) (*bo.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[key]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Observations = append([]bo.Observation(nil), s.Observations...)
	cp.ParameterMetadata = append([]bo.ParameterSchema(nil), s.ParameterMetadata...)
	return &cp, nil
}

// PutState stores (or overwrites) the state for key.
func (m *MemoryStore) PutState(_ context.Context, key string, state *bo.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *state
	m.states[key] = &cp
	return nil
}

// DeleteState removes key's state, if any. Deleting a nonexistent key is
// not an error.
func (m *MemoryStore) DeleteState(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, key)
	return nil
}

// Keys returns every key currently stored, in no particular order.
func (m *MemoryStore) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.states))
	for k := range m.states {
		keys = append(keys, k)
	}
	return keys, nil
}

// GetConfig returns the stored config, or (nil, nil) if none has been set.
func (m *MemoryStore) GetConfig(_ context.Context) (*bo.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.config == nil {
		return nil, nil
	}
	cp := *m.config
	return &cp, nil
}

// PutConfig stores cfg as the current config.
func (m *MemoryStore) PutConfig(_ context.Context, cfg *bo.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *cfg
	m.config = &cp
	return nil
}
