package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IssuanceCache implements ports.IssuanceCache using Redis. Keys are scoped
// by invoice and reference id; a hit replays the recorded issuance outcome.
type IssuanceCache struct {
	client *goredis.Client
	prefix string
}

// NewIssuanceCache creates a new Redis-backed issuance idempotency cache.
func NewIssuanceCache(client *goredis.Client) *IssuanceCache {
	return &IssuanceCache{
		client: client,
		prefix: "issuance:",
	}
}

// Get retrieves a cached issuance result by key.
// Returns nil, nil if the key does not exist.
func (c *IssuanceCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis issuance get: %w", err)
	}
	return val, nil
}

// Set stores an issuance result with TTL.
func (c *IssuanceCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis issuance set: %w", err)
	}
	return nil
}
