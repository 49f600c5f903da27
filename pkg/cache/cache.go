// Package cache provides snapshot caching for pipdeptree output.
//
// Running pipdeptree against a large environment takes seconds; cached
// snapshots make repeated renders of the same environment instant. Entries
// carry a TTL so a stale snapshot never outlives its default validity window.
//
// Two persistent backends are provided: FileCache (default, stores entries
// under the XDG cache directory) and RedisCache (opt-in via configuration,
// for shared or ephemeral-filesystem setups). NullCache disables caching.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached snapshots stay valid.
// Environments change when the user installs packages, so this is short.
const DefaultTTL = 15 * time.Minute

// Cache stores opaque byte values under string keys with per-entry TTL.
// Implementations must treat expired or corrupt entries as misses.
type Cache interface {
	// Get retrieves a value. The second return is false on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// SnapshotKey derives the cache key for a pipdeptree invocation.
// The key covers everything that changes the tool's output: the interpreter
// whose environment is inspected and the full argument list.
func SnapshotKey(python string, args []string) string {
	return hashKey("snapshot", python, args)
}
