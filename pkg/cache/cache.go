// Package cache stores converted documents keyed by a hash of their input.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// and [MongoCache] for the HTTP server, plus [NullCache] to disable caching.
// Keys come from a [Keyer] so that callers never build them by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes. Outputs depend only on the input bytes and the
// key options, so they stay valid until evicted.
const (
	TTLDocument = 7 * 24 * time.Hour
	TTLGraph    = 7 * 24 * time.Hour
)
