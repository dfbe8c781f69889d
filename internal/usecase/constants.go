package usecase

import "time"

const (
	// DefaultCacheTTL is how long a computed settlement is served from cache.
	DefaultCacheTTL = 10 * time.Minute

	// DefaultMaxExpenses caps a single settlement request.
	DefaultMaxExpenses = 10000

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyProcessing marks a key whose request is still in flight.
	IdempotencyProcessing = "processing"

	cacheKeyPrefix = "settlement:"
)
