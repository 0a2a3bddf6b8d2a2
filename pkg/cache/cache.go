// Package cache provides pluggable byte caches for rendered artifacts
// and circuit documents, plus the key derivation shared by all backends.
//
// Backends: [FileCache] for CLI usage, [MemoryCache] for tests and
// single-process servers, [RedisCache] for shared deployments, and
// [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per entry type. Documents change rarely and artifacts are
// derived purely from document content, so both can live for a while.
const (
	TTLDocument = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with per-entry TTL. A TTL of 0 means the
// entry never expires.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// ArtifactKeyOpts are the rendering options that contribute to an
// artifact cache key. Two renders with the same circuit hash but
// different options must not share an entry.
type ArtifactKeyOpts struct {
	Format          string `json:"format"`
	AddInit         bool   `json:"add_init"`
	ExpandComposite bool   `json:"expand_composite"`
	Detailed        bool   `json:"detailed"`
}

// Keyer derives cache keys for the data qsketch caches.
type Keyer interface {
	// DocumentKey generates a key for a stored circuit document.
	DocumentKey(name string) string

	// ArtifactKey generates a key for a rendered artifact of the circuit
	// with the given content hash.
	ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for a stored circuit document.
func (k *DefaultKeyer) DocumentKey(name string) string {
	return "doc:" + name
}

// ArtifactKey generates a key for a rendered artifact. The options are
// hashed into the key so that every option combination gets its own
// entry.
func (k *DefaultKeyer) ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", circuitHash, opts)
}
