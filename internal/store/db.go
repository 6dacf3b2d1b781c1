package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/overtone-dev/overtone/internal/logging"
)

// DB wraps the SQLite handle used by the override store.
type DB struct {
	*sql.DB
	logger zerolog.Logger
}

// Open opens (creating if necessary) the database at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create database directory: %v", ErrUnavailable, err)
		}
	}

	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := handle.Ping(); err != nil {
		handle.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &DB{DB: handle, logger: logging.Component("store")}, nil
}

// OpenInMemory opens an in-memory database. Intended for tests.
func OpenInMemory() (*DB, error) {
	handle, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// A single connection keeps the in-memory database alive.
	handle.SetMaxOpenConns(1)
	if err := handle.Ping(); err != nil {
		handle.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &DB{DB: handle, logger: logging.Component("store")}, nil
}

// Migrate creates the schema if it does not exist.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS user_overrides (
			app_id   TEXT NOT NULL,
			token    TEXT NOT NULL,
			value    TEXT NOT NULL,
			revision TEXT NOT NULL,
			saved_at TEXT NOT NULL,
			PRIMARY KEY (app_id, token)
		);
		CREATE INDEX IF NOT EXISTS idx_user_overrides_app ON user_overrides(app_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate override schema: %w", err)
	}
	return nil
}
