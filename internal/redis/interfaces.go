package redis

import (
	"context"
	"time"
)

// IdempotencyStoreInterface defines the interface for replaying responses
// to duplicate requests.
type IdempotencyStoreInterface interface {
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Set(ctx context.Context, key string, response *CachedResponse, ttl time.Duration) error
}

// Ensure concrete types implement interfaces.
var _ IdempotencyStoreInterface = (*IdempotencyStore)(nil)
