// Package memory provides a process-local key-value store.
package memory

import (
	"context"
	"sync"

	"storefront/internal/domain/repository"
)

type kvStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKVStore returns an empty in-memory store.
func NewKVStore() repository.KeyValueStore {
	return &kvStore{values: make(map[string]string)}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]

	return v, ok, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)

	return nil
}
