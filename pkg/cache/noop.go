package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheDisabled = errors.New("cache disabled")

// Noop is used when Redis is unreachable at startup: every Get misses and writes are dropped.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string, dest interface{}) (bool, error) { return false, nil }

func (Noop) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (Noop) Delete(ctx context.Context, keys ...string) error { return nil }

func (Noop) Ping(ctx context.Context) error { return ErrCacheDisabled }
