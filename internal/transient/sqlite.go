package transient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// How long past expiry a row remains usable for stale serving before the
// purge removes it.
const staleRetention = 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS ge_transients (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ge_transients_expires ON ge_transients(expires_at);
`

// SQLiteStore persists cached payloads across restarts
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (and if needed creates) the cache database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database %s: %w", path, err)
	}

	// A single writer keeps modernc/sqlite happy under concurrency
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Get returns the cached value for key, if any
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	var expiresAt int64

	row := s.db.QueryRowContext(ctx, `SELECT value, expires_at FROM ge_transients WHERE key = ?`, key)
	if err := row.Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read transient %s: %w", key, err)
	}

	fresh := s.now().Unix() < expiresAt
	return value, fresh, nil
}

// Set stores a value under key with the given TTL, replacing any previous
// entry, and opportunistically purges long-expired rows.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiresAt := s.now().Add(ttl).Unix()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ge_transients (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to write transient %s: %w", key, err)
	}

	purgeBefore := s.now().Add(-staleRetention).Unix()
	s.db.ExecContext(ctx, `DELETE FROM ge_transients WHERE expires_at < ?`, purgeBefore)

	return nil
}

// Delete removes a key
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ge_transients WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete transient %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
