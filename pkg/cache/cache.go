// Package cache stores generated dungeons and rendered artifacts by key.
//
// Backends:
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: never stores anything
//
// Keys come from a [Keyer]. Generation is deterministic per seed and options,
// so a dungeon key is a hash of the options, and an artifact key is a hash of
// the dungeon plus render options. Wrap a backend with [Instrument] to report
// hits and misses through the observability hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes.
const (
	TTLDungeon  = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
