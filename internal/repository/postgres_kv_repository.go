package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresKVRepository struct {
	db *sql.DB
}

// NewPostgresKVRepository creates a KVRepository over the kv_entries table
func NewPostgresKVRepository(db *sql.DB) KVRepository {
	return &postgresKVRepository{db: db}
}

const upsertKVQuery = `
	INSERT INTO kv_entries (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
`

// Get retrieves a value by key using parameterized queries
func (r *postgresKVRepository) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get key %q: %w", key, err)
	}

	return value, nil
}

// Set upserts a single entry
func (r *postgresKVRepository) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, upsertKVQuery, key, value); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// SetMany upserts all entries in one transaction
func (r *postgresKVRepository) SetMany(ctx context.Context, entries map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range entries {
		if _, err := tx.ExecContext(ctx, upsertKVQuery, key, value); err != nil {
			return fmt.Errorf("failed to set key %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
