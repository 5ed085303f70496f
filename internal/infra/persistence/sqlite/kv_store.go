// Package sqlite stores key-value pairs in a local SQLite file, the on-device backend.
package sqlite

import (
	"context"
	"database/sql"

	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// KVStore is a repository.KeyValueStore backed by SQLite.
type KVStore struct {
	db *sql.DB
}

var _ repository.KeyValueStore = (*KVStore)(nil)

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*KVStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	// A single writer avoids SQLITE_BUSY between goroutines of this process.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()

		return nil, errors.Wrap(err, "create kv_entries table")
	}

	return &KVStore{db: db}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "get %s", key)
	}

	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)

	return errors.Wrapf(err, "set %s", key)
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)

	return errors.Wrapf(err, "delete %s", key)
}

// Close releases the database handle.
func (s *KVStore) Close() error {
	return errors.WithStack(s.db.Close())
}
