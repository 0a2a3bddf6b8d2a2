// Package store persists named circuit documents.
//
// Records carry the structured circuit description rather than rendered
// output; rendering stays a pure function of the description, and
// artifacts are cached separately (pkg/cache).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/qsketch/qsketch/pkg/source"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("circuit not found")

// Record is one stored circuit document.
type Record struct {
	ID        string          `bson:"_id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Circuit   source.Document `bson:"circuit" json:"circuit"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updated_at"`
}

// Store persists circuit records.
type Store interface {
	// Put inserts or replaces a record. A record without an ID gets a
	// fresh one assigned; the timestamps are maintained by the store.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns [ErrNotFound] when absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records ordered by creation time.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record by ID. Returns [ErrNotFound] when absent.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}
