package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/splitledger/internal/adapter/http"
	"github.com/iho/splitledger/internal/adapter/http/handler"
	"github.com/iho/splitledger/internal/adapter/http/middleware"
	redisRepo "github.com/iho/splitledger/internal/adapter/repository/redis"
	"github.com/iho/splitledger/internal/infrastructure/config"
	"github.com/iho/splitledger/internal/infrastructure/idgen"
	"github.com/iho/splitledger/internal/infrastructure/logger"
	"github.com/iho/splitledger/internal/infrastructure/metrics"
	"github.com/iho/splitledger/internal/infrastructure/redis"
	"github.com/iho/splitledger/internal/infrastructure/retry"
	"github.com/iho/splitledger/internal/usecase"
)

const (
	limiterCleanupInterval = time.Minute
	limiterMaxIdle         = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "splitledger-server",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	go a.limiter.RunCleanup(ctx, limiterCleanupInterval, limiterMaxIdle)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Bool("redis", cfg.RedisEnabled).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

// app is the wired HTTP service.
type app struct {
	handler http.Handler
	limiter *middleware.RateLimiter
	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	a := &app{}

	var (
		cache       usecase.Cache
		pinger      handler.Pinger
		idempotency *middleware.IdempotencyMiddleware
	)

	if cfg.RedisEnabled {
		client, err := redis.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		log.Info().Msg("connected to redis")

		retrier := retry.New(redis.IsTransient,
			retry.WithLogger(log),
			retry.WithOnRetry(m.RedisRetry),
		)

		cache = redisRepo.NewCache(client, retrier)
		pinger = redis.NewPinger(client)
		idempotency = middleware.NewIdempotencyMiddleware(
			redisRepo.NewIdempotencyStore(client, retrier),
			cfg.IdempotencyTTL,
			log,
		)
	}

	settlementUC := usecase.NewSettlementUseCase(usecase.SettlementConfig{
		IDGenerator: idgen.NewULIDGenerator(),
		Cache:       cache,
		Metrics:     m,
		Logger:      log,
		Tolerance:   cfg.SettlementTolerance,
		CacheTTL:    cfg.CacheTTL,
		MaxExpenses: cfg.MaxExpenses,
	})

	a.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).
		OnReject(m.RateLimitHits.Inc)

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SettlementHandler: handler.NewSettlementHandler(settlementUC),
		HealthHandler:     handler.NewHealthHandler(pinger),
		Logger:            log,
		Idempotency:       idempotency,
		RateLimiter:       a.limiter,
		Metrics:           m,
		Gatherer:          registry,
	})

	return a, nil
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c()
	}
}
