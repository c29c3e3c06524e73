package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// CacheService defines the interface for a distributed cache system
type CacheService interface {
	// Get unmarshals the cached value into dest, or returns ErrCacheMiss.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set marshals value and stores it with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
