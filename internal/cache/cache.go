package cache

import (
	"context"
	"time"

	"wordsim/internal/embeddings"
)

// VectorCache stores resolved embeddings so repeated runs skip the provider round-trip.
type VectorCache interface {
	// Get returns false on a cache miss.
	Get(ctx context.Context, key string) (embeddings.Vector, bool, error)

	// Set stores a vector with TTL. A zero TTL keeps the entry until evicted.
	Set(ctx context.Context, key string, vec embeddings.Vector, ttl time.Duration) error

	// Close closes the cache connection
	Close() error
}

// Key builds the cache key for a word within a vector space, as named by
// embeddings.Fingerprint.
func Key(scope, word string) string {
	return scope + ":" + word
}
