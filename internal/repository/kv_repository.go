package repository

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

// KVRepository is the string-keyed, string-valued store the storefront state
// is persisted to
type KVRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes every entry, atomically where the backend supports it
	SetMany(ctx context.Context, entries map[string]string) error
}
