package ports

import (
	"context"
	"time"
)

// Cache defines the contract for the read-side query cache.
// Implementations store opaque byte payloads under string keys with a TTL.
//
// The cache is an optimization only: callers must treat every error and every
// miss as "recompute from the source of truth" and never fail a request over
// a cache problem.
type Cache interface {
	// Get returns the payload stored under key.
	// The second result is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the payload under key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the payload stored under key, if any.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection resources.
	Close() error
}
