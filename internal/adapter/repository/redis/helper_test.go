package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

type countingRetrier struct {
	names []string
}

func (r *countingRetrier) Retry(_ context.Context, name string, operation func() error) error {
	r.names = append(r.names, name)
	return operation()
}

// hookRetrier calls before ahead of every named operation.
type hookRetrier struct {
	before func(name string)
}

func (r *hookRetrier) Retry(_ context.Context, name string, operation func() error) error {
	r.before(name)
	return operation()
}
