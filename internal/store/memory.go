package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store used by tests and non-persistent setups.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	// FailWith, when set, makes every operation return that error. Tests use
	// it to simulate an unavailable store.
	FailWith error
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Load implements Store.
func (m *Memory) Load(ctx context.Context, key string, dest interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailWith != nil {
		return m.FailWith
	}

	blob, ok := m.blobs[key]
	if !ok {
		return ErrKeyNotFound
	}

	return json.Unmarshal(blob, dest)
}

// Save implements Store.
func (m *Memory) Save(ctx context.Context, key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}

	blob, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.blobs[key] = blob
	return nil
}
