// Package cache stores rendered artifacts keyed by the content they were
// rendered from.
//
// Rendering a DOT file to PDF is the slowest step of an export. When the
// graph has not changed since the last export, the DOT source is identical
// and the cached PDF is reused instead of invoking the renderer again.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.RenderKey("graphviz", dot)
//	if pdf, ok, _ := c.Get(ctx, key); ok {
//	    // reuse pdf
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. ok is false on a miss or an expired entry.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
