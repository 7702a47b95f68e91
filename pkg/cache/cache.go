// Package cache stores rendered explanation text between runs.
//
// The CLI uses a [FileCache] under the XDG cache directory, the HTTP server
// can share a [RedisCache] between replicas, and [NullCache] disables
// caching altogether. Keys come from a [Keyer] so that every backend agrees
// on what identifies a rendering: the hash of the canonical explanation plus
// the options that change the output.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with ok=false and a nil error; errors are reserved for
// backend failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
