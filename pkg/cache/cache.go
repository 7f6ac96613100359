package cache

import (
	"context"
	"time"
)

// Cache is the contract the repositories depend on. The Redis implementation
// lives in internal/infrastructure/cache; swapping in another backend only
// requires satisfying this interface.
type Cache interface {
	// Get unmarshals the cached value into dest. The bool reports whether the
	// key was present; on a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON-marshaled) under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob-style pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
