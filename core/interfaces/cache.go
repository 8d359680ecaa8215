// Package interfaces defines the contracts shared between the resolution core
// and its infrastructure, so every collaborator can be swapped or mocked in tests.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte store used as the backend of the HTTP response cache.
// Implementations exist for process memory, a SQLite file and Redis.
//
// Example usage:
//
//	// Store a serialized response
//	err := cache.Set(ctx, "https://example.com/feed.xml", dump, 24*time.Hour)
//
//	// Retrieve it
//	data, err := cache.Get(ctx, "https://example.com/feed.xml")
//	if errors.Is(err, interfaces.ErrCacheMiss) {
//		// fetch from network
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrCacheMiss if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
