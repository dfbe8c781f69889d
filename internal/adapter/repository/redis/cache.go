package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/splitledger/internal/usecase"
)

// Cache implements usecase.Cache using Redis.
type Cache struct {
	client  *redis.Client
	retrier Retrier
	prefix  string
}

// NewCache creates a new Cache. A nil retrier disables retries.
func NewCache(client *redis.Client, retrier Retrier) *Cache {
	return &Cache{
		client:  client,
		retrier: orNoRetry(retrier),
		prefix:  "cache:",
	}
}

// Get retrieves a value by key. Absent keys yield usecase.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := c.retrier.Retry(ctx, "cache_get", func() error {
		var err error
		value, err = c.client.Get(ctx, c.prefix+key).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.retrier.Retry(ctx, "cache_set", func() error {
		return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	})
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.retrier.Retry(ctx, "cache_delete", func() error {
		return c.client.Del(ctx, c.prefix+key).Err()
	})
}
