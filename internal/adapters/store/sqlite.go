package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/zerr"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS state (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// SQLiteStore keeps state in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, zerr.Wrap(domain.ErrInvalidConfig, "sqlite path is required")
	}
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), dirPerm); err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to create state directory")
	}

	dsn := "file:" + clean + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to open sqlite db"), "path", clean)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to ping sqlite db"), "path", clean)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to create state table")
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the stored values for keys.
func (s *SQLiteStore) Get(ctx context.Context, keys []string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	//nolint:gosec // only placeholders are interpolated
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM state WHERE key IN ("+placeholders+")", args...)
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to query state")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to scan state")
		}
		out[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to read state")
	}
	return out, nil
}

// Set upserts values in one transaction.
func (s *SQLiteStore) Set(ctx context.Context, values map[string]json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for k, v := range values {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO state (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			k, []byte(v),
		)
		if err != nil {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to write state"), "key", k)
		}
	}

	if err := tx.Commit(); err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to commit state")
	}
	return nil
}
