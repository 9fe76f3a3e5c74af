package cache

import (
	"context"
	"time"

	"github.com/matzehuels/repograph/pkg/observability"
)

// Observed reports hits, misses and writes of an inner cache to the
// registered cache hooks.
type Observed struct {
	Cache
}

// WithHooks wraps c so every access is reported through
// observability.Cache().
func WithHooks(c Cache) Cache {
	if c == nil {
		return nil
	}
	if _, ok := c.(Observed); ok {
		return c
	}
	return Observed{Cache: c}
}

// Get reads from the inner cache and reports the outcome.
func (o Observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err != nil {
		return data, hit, err
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, KeyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, KeyType(key))
	}
	return data, hit, nil
}

// Set writes to the inner cache and reports the stored size.
func (o Observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := o.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	return nil
}
