package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/splitledger/internal/usecase"
)

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client  *redis.Client
	retrier Retrier
	prefix  string
}

// NewIdempotencyStore creates a new IdempotencyStore. A nil retrier disables retries.
func NewIdempotencyStore(client *redis.Client, retrier Retrier) *IdempotencyStore {
	return &IdempotencyStore{
		client:  client,
		retrier: orNoRetry(retrier),
		prefix:  "idempotency:",
	}
}

// maxClaimAttempts bounds how often CheckAndSet retries a key that expired
// between SETNX and GET.
const maxClaimAttempts = 3

// CheckAndSet atomically checks if key exists, sets if not.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	value := response
	if value == nil {
		// Placeholder to "lock" the key
		value = []byte(usecase.IdempotencyProcessing)
	}

	for attempt := 1; ; attempt++ {
		var set bool
		err := s.retrier.Retry(ctx, "idempotency_set", func() error {
			var err error
			set, err = s.client.SetNX(ctx, fullKey, value, ttl).Result()
			return err
		})
		if err != nil {
			return false, nil, err
		}
		if set {
			return false, nil, nil
		}

		// Another request got there first
		var existing []byte
		err = s.retrier.Retry(ctx, "idempotency_get", func() error {
			var err error
			existing, err = s.client.Get(ctx, fullKey).Bytes()
			return err
		})
		switch {
		case err == nil:
			return true, existing, nil
		case !errors.Is(err, redis.Nil):
			return false, nil, err
		case attempt == maxClaimAttempts:
			return false, nil, fmt.Errorf("idempotency key %q expired %d times while being claimed", key, attempt)
		}
	}
}

// Update updates an existing idempotency key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.retrier.Retry(ctx, "idempotency_update", func() error {
		return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
	})
}

// Release drops a key so the request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.retrier.Retry(ctx, "idempotency_release", func() error {
		return s.client.Del(ctx, s.prefix+key).Err()
	})
}
