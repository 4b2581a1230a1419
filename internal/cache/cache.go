package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("key not found in cache")
	ErrInvalidValue = errors.New("invalid value for cache")
	ErrClosed       = errors.New("cache is closed")
	ErrInvalidKey   = errors.New("invalid cache key")
)

// Cache stores parsed dataset snapshots keyed by source identity. Values
// round-trip through encoding.BinaryMarshaler/BinaryUnmarshaler so the
// in-memory and Redis backends stay interchangeable.
type Cache interface {
	// Set stores value under key. A zero ttl falls back to the backend's
	// default TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Get loads the value for key into value, or returns ErrNotFound.
	Get(ctx context.Context, key string, value interface{}) error

	Delete(ctx context.Context, key string) error

	Clear(ctx context.Context) error

	Close() error
}

// Options configures a cache backend. Redis fields are ignored by the
// in-memory backend, and CleanupInterval by the Redis one.
type Options struct {
	DefaultTTL time.Duration

	CleanupInterval time.Duration

	RedisURL string

	RedisPassword string

	RedisDB int
}

func DefaultOptions() Options {
	return Options{
		DefaultTTL:      time.Hour,
		CleanupInterval: time.Minute * 5,
	}
}
