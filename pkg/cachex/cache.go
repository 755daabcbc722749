// Package cachex provides the key/value cache used for read-through caching,
// with Redis and in-process implementations.
package cachex

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cachex: miss")

// Cache is a byte-oriented key/value store with string sets, which are used
// to track groups of keys for bulk invalidation.
type Cache interface {
	// Get returns the value for key or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, applying the implementation's TTL if any.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// AddToSet adds member to the set stored at key.
	AddToSet(ctx context.Context, key, member string) error

	// Members returns the members of the set stored at key.
	Members(ctx context.Context, key string) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}

// Backend names the transport behind c, looking through Instrument.
func Backend(c Cache) string {
	for {
		switch v := c.(type) {
		case interface{ Name() string }:
			return v.Name()
		case *Instrumented:
			c = v.Cache
		default:
			return "unknown"
		}
	}
}
