// Package cache stores solved snapshots and rendered artifacts under keys
// derived from the content that produced them.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for shared deployments and [NullCache] when caching is disabled. Keys come
// from a [Keyer]; [ScopedKeyer] namespaces them for several tenants sharing
// one backend.
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries.
const (
	SnapshotTTL = 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the value stored at key. A missing or expired entry is a
	// miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data at key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
