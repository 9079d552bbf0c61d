// Package cache stores optimizer results and rendered artifacts keyed by the
// content they were computed from.
//
// # Overview
//
// Annealing a large build takes seconds to minutes, and the result is a pure
// function of the input save text and the optimizer configuration. The CLI
// hashes both into a key and reuses the stored save text when the same
// optimization is requested again.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, with optional TTL
//   - [NullCache]: never stores anything, used by --no-cache
//
// # Keys
//
// A [Keyer] builds keys from a content hash plus the options that affect the
// result. [DefaultKeyer] hashes the options; [ScopedKeyer] adds a prefix.
//
//	k := cache.NewDefaultKeyer()
//	key := k.OptimizeKey(cache.Hash(save), cache.OptimizeKeyOpts{Iterations: 1e6, Seed: 42})
//
// Cache events are reported to [observability.Cache] with the key type
// ("optimize" or "artifact").
package cache

import (
	"context"
	"strings"
	"time"
)

// Entry lifetimes. Optimizer output depends only on its key, so it may live
// long; artifacts are cheap to rebuild.
const (
	TTLOptimize = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired and
	// corrupt entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// keyType returns the prefix of a key, used as the metric label.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
