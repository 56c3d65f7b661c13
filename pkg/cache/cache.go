// Package cache stores computed layouts and rendered artifacts.
//
// # Overview
//
// Layout and rendering are deterministic: the same dataset and options always
// produce the same bytes. The pipeline therefore keys every result by a
// content hash of its inputs (see [Keyer]) and keeps it in a [Cache].
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [MemoryCache]: in-process map with expiry (tests, single server)
//   - [RedisCache]: shared cache for several server replicas
//   - [MongoCache]: documents with a TTL index, for deployments that
//     already run MongoDB
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are "prefix:sha256" strings. [ScopedKeyer] prepends a namespace so
// several tenants or environments can share one backend.
//
// # Errors
//
// Backends report a miss as (nil, false, nil). An error means the backend
// itself failed; callers treat that like a miss and recompute.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLLayout keeps computed layouts for a day.
	TTLLayout = 24 * time.Hour

	// TTLArtifact keeps rendered SVG/PNG/PDF/JSON for a week.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired key is reported
	// as hit == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections or handles held by the backend.
	Close() error
}
