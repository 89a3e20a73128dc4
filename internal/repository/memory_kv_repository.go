package repository

import (
	"context"
	"sync"
)

type memoryKVRepository struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryKVRepository creates an in-process KVRepository. State is lost on exit.
func NewMemoryKVRepository() KVRepository {
	return &memoryKVRepository{entries: make(map[string]string)}
}

func (r *memoryKVRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (r *memoryKVRepository) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = value
	return nil
}

func (r *memoryKVRepository) SetMany(ctx context.Context, entries map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, value := range entries {
		r.entries[key] = value
	}
	return nil
}
