package credstore

import (
	"context"
	"sync"
)

// Store is an opaque key-value store for credentials. Get returns "" with a
// nil error when the key is absent; Delete of a missing key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an in-process Store, used when no redis is configured.
func NewMemory() Store {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
