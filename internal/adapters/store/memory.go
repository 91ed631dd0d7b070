// Package store implements ports.StateStore on several backends.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps state for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]json.RawMessage)}
}

// Get returns copies of the stored values for keys.
func (s *MemoryStore) Get(_ context.Context, keys []string) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := s.values[k]; ok {
			out[k] = bytes.Clone(v)
		}
	}
	return out, nil
}

// Set replaces the given keys.
func (s *MemoryStore) Set(_ context.Context, values map[string]json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range values {
		s.values[k] = bytes.Clone(v)
	}
	return nil
}
