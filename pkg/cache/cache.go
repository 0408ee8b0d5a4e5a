// Package cache provides the key/value store behind provider response
// caching.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries on disk, one file per key, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// Keys are opaque strings; callers namespace them with a prefix such as
// "strands:". Values are raw bytes, usually JSON.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with ok=false and a nil error; an error means the
// backend itself failed. A ttl of zero on Set means the entry never
// expires. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
