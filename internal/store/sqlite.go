package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/overtone-dev/overtone/internal/tokens"
)

// SQLiteStore implements Store on a local SQLite database. Every save
// replaces the app's record wholesale so the durable state is always a
// complete, self-consistent snapshot of the user layer.
type SQLiteStore struct {
	db *DB
}

// NewSQLiteStore creates a store over an opened database.
func NewSQLiteStore(db *DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load retrieves the persisted record for appID. A missing record is a
// normal (nil, nil) result.
func (s *SQLiteStore) Load(ctx context.Context, appID string) (*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, value, revision, saved_at
		FROM user_overrides WHERE app_id = ?
	`, appID)
	if err != nil {
		return nil, fmt.Errorf("%w: load overrides: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	record := &Record{AppID: appID, Entries: make(map[tokens.Token]tokens.Color)}
	for rows.Next() {
		var token, value, revision, savedAt string
		if err := rows.Scan(&token, &value, &revision, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan override row: %w", err)
		}
		record.Entries[tokens.Token(token)] = tokens.Color(value)
		record.Revision = revision
		if t, err := time.Parse(time.RFC3339, savedAt); err == nil {
			record.SavedAt = t
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating override rows: %w", err)
	}

	if len(record.Entries) == 0 {
		return nil, nil
	}
	return record, nil
}

// Save replaces the persisted record for appID with the given entries.
// Saving an empty map clears the record.
func (s *SQLiteStore) Save(ctx context.Context, appID string, entries map[tokens.Token]tokens.Color) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin save: %v", ErrWriteFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_overrides WHERE app_id = ?`, appID); err != nil {
		return fmt.Errorf("%w: clear previous record: %v", ErrWriteFailed, err)
	}

	revision := uuid.New().String()
	savedAt := time.Now().UTC().Format(time.RFC3339)
	for token, value := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO user_overrides (app_id, token, value, revision, saved_at)
			VALUES (?, ?, ?, ?, ?)
		`, appID, string(token), string(value), revision, savedAt)
		if err != nil {
			return fmt.Errorf("%w: insert override %q: %v", ErrWriteFailed, token, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit save: %v", ErrWriteFailed, err)
	}

	s.db.logger.Debug().
		Str("app_id", appID).
		Str("revision", revision).
		Int("entries", len(entries)).
		Msg("saved user overrides")
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
