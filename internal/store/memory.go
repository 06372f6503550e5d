package store

import (
	"context"
	"sync"
	"time"

	"github.com/JulesSitpach/tradenavigatorpro/internal/pricing"
)

type memoryEntry struct {
	result    *pricing.OptimizationResult
	expiresAt time.Time
}

// MemoryStore is an in-process ResultStore for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*pricing.OptimizationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}
	return entry.result, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, result *pricing.OptimizationResult, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{result: result, expiresAt: time.Now().Add(ttl)}
	return nil
}
