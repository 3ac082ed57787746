// Package cache provides pluggable storage for pipeline results and rendered
// artifacts.
//
// Tracing and refining are deterministic: the same mask and options always
// produce the same paths. Every stage output is therefore cacheable by content
// hash, and the Keyer builds keys that chain each stage onto the hash of its
// input, so an upstream change invalidates everything downstream.
//
// # Backends
//
// Four backends implement the Cache interface:
//   - FileCache stores per-entry JSON files under a sharded directory tree.
//     This is the CLI default.
//   - NullCache stores nothing and is used when caching is disabled.
//   - RedisCache is a shared cache for service deployments.
//   - MongoCache is a persistent shared cache with server-side expiry.
//
// All backends treat corrupt or expired entries as misses rather than errors,
// so a damaged cache degrades to recomputation instead of failure.
//
// # Keys
//
// Keys are built from a stage prefix plus a SHA-256 hash of the stage input
// hash and the options that affect the stage output:
//
//	trace:<hash(maskHash, TraceKeyOpts)>
//	refine:<hash(pathsHash, RefineKeyOpts)>
//	artifact:<hash(pathsHash, ArtifactKeyOpts)>
//	http:<namespace>:<key>
//
// ScopedKeyer prepends a prefix to all keys for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type. Trace and refine results are small and cheap
// to keep; artifacts are larger, and HTTP responses can go stale upstream.
const (
	// TTLTrace is the lifetime of cached trace results.
	TTLTrace = 7 * 24 * time.Hour

	// TTLRefine is the lifetime of cached refine results.
	TTLRefine = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 24 * time.Hour

	// TTLHTTP is the lifetime of cached HTTP responses.
	TTLHTTP = time.Hour
)

// Cache stores byte values under string keys with optional expiry.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves the value for key. The bool reports whether the key was
	// present and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero stores the entry without
	// expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// NullCache stores nothing: every Get is a miss and writes are dropped. It
// backs the --no-cache flag and keeps tests hermetic.
type NullCache struct{}

// NewNullCache creates a cache that never stores anything.
func NewNullCache() Cache { return NullCache{} }

// Get always reports a miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set drops the entry.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error {
	return nil
}

// Close does nothing.
func (NullCache) Close() error {
	return nil
}
