package store

import (
	"sync"
)

// MemoryStore is a CounterStore with no durable backing. It is used in
// tests and as the degraded mode when no writable data directory exists.
type MemoryStore struct {
	mu     sync.RWMutex
	counts map[string]int
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counts: make(map[string]int),
	}
}

// Get returns the count for key, or 0 if absent.
func (s *MemoryStore) Get(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[key]
}

// Set overwrites the count for key, clamping negatives to zero.
func (s *MemoryStore) Set(key string, value int) {
	if value < 0 {
		value = 0
	}
	s.mu.Lock()
	s.counts[key] = value
	s.mu.Unlock()
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
