// Package cache memoizes pipeline stages: encoded grids, layouts and
// rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [NullCache]: stores nothing, used by --no-cache
//   - [RedisCache]: shared cache for the preview server (go-redis)
//   - [MongoCache]: shared cache backed by a MongoDB collection
//
// The cache is a memoization layer, not a store of record: every entry can be
// recomputed from its key's inputs, so a failing Set is never fatal.
//
// # Keys
//
// A [Keyer] derives keys from stage inputs. Layout keys are built from the
// hash of the encoded grid, and artifact keys from the hash of the layout
// document, so a change anywhere upstream invalidates everything below it.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Entry lifetimes per pipeline stage. Encoding and layout are deterministic,
// so their entries only expire to bound disk usage.
const (
	TTLGrid     = 30 * 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
