package redis

import "context"

// Retrier retries transient Redis failures.
type Retrier interface {
	Retry(ctx context.Context, name string, operation func() error) error
}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, _ string, operation func() error) error {
	return operation()
}

func orNoRetry(r Retrier) Retrier {
	if r == nil {
		return noRetry{}
	}
	return r
}
