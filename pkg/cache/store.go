package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent or its entry has expired
var ErrCacheMiss = errors.New("cache miss")

// Store is a TTL key-value cache for expensive read paths. Values are
// stored as JSON so in-process and Redis-backed implementations are
// interchangeable.
type Store interface {
	// Get unmarshals the cached value into dest, or returns ErrCacheMiss
	Get(ctx context.Context, key string, dest interface{}) error
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
}
