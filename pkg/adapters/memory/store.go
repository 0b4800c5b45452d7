package memory

import (
	"context"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Store implements ports.RunStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Run
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Run),
	}
}

// Save persists a copy of the run.
func (s *Store) Save(ctx context.Context, key string, run *domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = *run
	return nil
}

// Load retrieves the run from memory.
func (s *Store) Load(ctx context.Context, key string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.data[key]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	// Copy on read so callers can't mutate the stored record through the pointer.
	return &run, nil
}

// Delete removes the run.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}
