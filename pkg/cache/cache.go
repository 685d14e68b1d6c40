// Package cache stores export digests between runs.
//
// The pipeline keeps the digest of the last document written for a given
// scene dump, selection and option set. When the next export produces the
// same digest the file is not rewritten.
//
// # Backends
//
//   - [FileCache]: one JSON file per key under a local directory
//   - [RedisCache]: a shared Redis instance, for teams exporting to a
//     common directory
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are built by a [Keyer]; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with ok == false and a nil error. Implementations
// must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLDigest is how long a stored export digest stays valid.
const TTLDigest = 30 * 24 * time.Hour
