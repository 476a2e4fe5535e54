package storage

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store used in tests and for the CLI's
// --memory mode. Values are copied on the way in and out so callers
// can't alias the stored bytes.
type MemStore struct {
	mu      sync.RWMutex
	records map[string][]byte

	// FailSet, when non-nil, is returned by every Set. Lets tests
	// exercise persistence-failure paths.
	FailSet error
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string][]byte)}
}

// Get returns the current value of the named record.
func (s *MemStore) Get(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.records[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set replaces the named record with value.
func (s *MemStore) Set(_ context.Context, name string, value []byte) error {
	if s.FailSet != nil {
		return &PersistenceError{Op: "set", Name: name, Err: s.FailSet}
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.mu.Lock()
	s.records[name] = stored
	s.mu.Unlock()
	return nil
}

// Delete removes the named record.
func (s *MemStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	delete(s.records, name)
	s.mu.Unlock()
	return nil
}
