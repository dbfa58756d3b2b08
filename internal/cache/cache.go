// Package cache provides the key/value store contract the core consumes for
// one-time codes, pending referral links and the short-lived profile cache.
package cache

import (
	"context"
	"time"
)

// Cache is a per-key TTL store. Get reports absence through the second
// return value rather than an error; losing the cache degrades reads to the
// repositories, never to incorrect data.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
