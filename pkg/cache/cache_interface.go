package cache

import (
	"context"
	"time"
)

// Cache defines the contract of the cache layer.
// Implementations: Redis (infrastructure/cache).
type Cache interface {
	// Get loads key into dest.
	// found = false on a cache miss, dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
