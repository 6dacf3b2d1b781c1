// Package store persists user override layers in a local SQLite database.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/overtone-dev/overtone/internal/tokens"
)

// Storage errors.
var (
	// ErrUnavailable indicates the durable store cannot be reached at all.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrWriteFailed indicates a durable write did not complete. The
	// in-memory state that triggered the write remains applied.
	ErrWriteFailed = errors.New("storage write failed")
)

// Record is the durable snapshot of a user override layer, keyed by an
// opaque application identity string.
type Record struct {
	AppID    string
	Entries  map[tokens.Token]tokens.Color
	Revision string
	SavedAt  time.Time
}

// Store is the persistence boundary for user override layers. A missing
// record for a valid app id is reported as (nil, nil), not an error.
type Store interface {
	Load(ctx context.Context, appID string) (*Record, error)
	Save(ctx context.Context, appID string, entries map[tokens.Token]tokens.Color) error
	Close() error
}
