package cache

import (
	"context"
	"time"

	"github.com/chatlens/bot/internal/domain"
)

// DisabledCache satisfies the cache interface when no backend is configured.
// Every Get is a miss and every Set is a no-op, so lookups always hit the live
// search endpoint but never fail because of the cache.
type DisabledCache struct{}

// NewDisabledCache creates a cache that never stores anything.
func NewDisabledCache() *DisabledCache {
	return &DisabledCache{}
}

// Get always reports a miss.
func (c *DisabledCache) Get(ctx context.Context, key string) (string, error) {
	return "", domain.ErrCacheMiss
}

// Set discards the value.
func (c *DisabledCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *DisabledCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Exists always reports absent.
func (c *DisabledCache) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}
