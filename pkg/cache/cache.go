// Package cache stores fetched upstream snapshots between requests.
//
// Backends implement [Cache]:
//
//   - [FileCache]: one JSON file per key under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the server
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Entries are opaque bytes with an optional TTL. Callers decide what to
// store; package feed keeps successful GitHub responses only.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached snapshots.
const (
	// TTLProfile bounds how stale a cached profile may be.
	TTLProfile = 15 * time.Minute
	// TTLRepositories bounds how stale a cached repository list may be.
	TTLRepositories = 15 * time.Minute
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
	// Close releases backend resources.
	Close() error
}
