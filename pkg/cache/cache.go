// Package cache provides artifact caching for rendered diagrams.
//
// Rendering a diagram is deterministic, so artifacts are cached by the
// content hash of the serialized config plus the render options. Two backends
// are provided:
//   - FileCache: on-disk cache for CLI usage (~/.cache/ringlet/)
//   - NullCache: no-op cache for tests and --no-cache runs
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts captures the render options that contribute to an artifact
// cache key. Anything that changes the rendered bytes must appear here.
type ArtifactKeyOpts struct {
	Format string
	Title  string
}

// ArtifactKey generates a cache key for a rendered artifact.
// configHash is the content hash of the serialized diagram config.
func ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts.Format, opts.Title)
}
