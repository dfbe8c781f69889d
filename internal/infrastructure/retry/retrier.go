package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Retrier runs operations with exponential backoff on transient errors.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	retryable       func(error) bool
	onRetry         func(operation string)
	logger          zerolog.Logger
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithLogger sets the logger used to report retries.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Retrier) { r.logger = logger }
}

// WithMaxRetries caps the number of retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(r *Retrier) { r.maxRetries = n }
}

// WithIntervals overrides the backoff schedule.
func WithIntervals(initial, maxInterval, maxElapsed time.Duration) Option {
	return func(r *Retrier) {
		r.initialInterval = initial
		r.maxInterval = maxInterval
		r.maxElapsedTime = maxElapsed
	}
}

// WithOnRetry registers a hook called before every retry.
func WithOnRetry(fn func(operation string)) Option {
	return func(r *Retrier) { r.onRetry = fn }
}

// New creates a Retrier that retries errors for which retryable returns true.
func New(retryable func(error) bool, opts ...Option) *Retrier {
	r := &Retrier{
		maxRetries:      3,
		initialInterval: 20 * time.Millisecond,
		maxInterval:     500 * time.Millisecond,
		maxElapsedTime:  2 * time.Second,
		retryable:       retryable,
		logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Retry executes operation with exponential backoff on retryable errors.
// The name identifies the operation in logs and metrics.
func (r *Retrier) Retry(ctx context.Context, name string, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if r.retryable == nil || !r.retryable(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Str("operation", name).
			Int("retry", retryCount).
			Msg("transient error, retrying")

		if r.onRetry != nil {
			r.onRetry(name)
		}

		return err
	}, backoff.WithContext(b, ctx))
}
