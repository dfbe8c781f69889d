package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/settlement"
)

// SettlementConfig holds the dependencies of a SettlementUseCase.
type SettlementConfig struct {
	IDGenerator IDGenerator
	Cache       Cache           // optional
	Metrics     MetricsRecorder // optional
	Logger      zerolog.Logger
	Tolerance   float64       // default settlement.DefaultTolerance
	CacheTTL    time.Duration // default DefaultCacheTTL
	MaxExpenses int           // default DefaultMaxExpenses
}

// SettlementUseCase validates expense snapshots and runs them through the
// settlement engine.
type SettlementUseCase struct {
	idGen       IDGenerator
	cache       Cache
	metrics     MetricsRecorder
	logger      zerolog.Logger
	tolerance   float64
	cacheTTL    time.Duration
	maxExpenses int
	now         func() time.Time
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(cfg SettlementConfig) *SettlementUseCase {
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = settlement.DefaultTolerance
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.MaxExpenses == 0 {
		cfg.MaxExpenses = DefaultMaxExpenses
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}

	return &SettlementUseCase{
		idGen:       cfg.IDGenerator,
		cache:       cfg.Cache,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		tolerance:   cfg.Tolerance,
		cacheTTL:    cfg.CacheTTL,
		maxExpenses: cfg.MaxExpenses,
		now:         time.Now,
	}
}

// SettleInput represents input for a settlement run.
type SettleInput struct {
	Expenses []domain.Expense
	// Tolerance overrides the configured tolerance when positive.
	Tolerance float64
}

// BalancesResult holds the participants and net balances of a group.
type BalancesResult struct {
	Participants    []string
	Balances        domain.Balances
	TotalSpent      float64
	SkippedExpenses int
}

// SettlementResult is the outcome of a settlement run.
type SettlementResult struct {
	ID              string            `json:"id"`
	Participants    []string          `json:"participants"`
	Balances        domain.Balances   `json:"balances"`
	Transfers       []domain.Transfer `json:"transfers"`
	TotalSpent      float64           `json:"total_spent"`
	SkippedExpenses int               `json:"skipped_expenses"`
	Tolerance       float64           `json:"tolerance"`
	ComputedAt      time.Time         `json:"computed_at"`
	Cached          bool              `json:"-"`
}

// Settled reports whether nobody has to pay anybody.
func (r *SettlementResult) Settled() bool {
	return len(r.Transfers) == 0
}

// ResolveParticipants returns everyone named in expenses.
func (uc *SettlementUseCase) ResolveParticipants(ctx context.Context, expenses []domain.Expense) ([]string, error) {
	if err := uc.validate(expenses); err != nil {
		return nil, err
	}

	return settlement.ResolveParticipants(expenses), nil
}

// CalculateBalances returns the net balance of everyone named in expenses.
func (uc *SettlementUseCase) CalculateBalances(ctx context.Context, expenses []domain.Expense) (*BalancesResult, error) {
	if err := uc.validate(expenses); err != nil {
		return nil, err
	}

	return calculate(expenses), nil
}

// Settle computes the transfers that settle the group.
func (uc *SettlementUseCase) Settle(ctx context.Context, input SettleInput) (*SettlementResult, error) {
	start := time.Now()

	if err := domain.ValidateTolerance(input.Tolerance); err != nil {
		uc.metrics.SettlementError("validation")
		return nil, err
	}
	if err := uc.validate(input.Expenses); err != nil {
		return nil, err
	}

	tolerance := input.Tolerance
	if tolerance == 0 {
		tolerance = uc.tolerance
	}

	key := cacheKeyPrefix + Fingerprint(input.Expenses, tolerance)
	if cached, ok := uc.lookup(ctx, key); ok {
		return cached, nil
	}

	calc := calculate(input.Expenses)
	transfers := settlement.SettleWithTolerance(calc.Balances, tolerance)

	result := &SettlementResult{
		ID:              uc.idGen.Generate(),
		Participants:    calc.Participants,
		Balances:        calc.Balances,
		Transfers:       transfers,
		TotalSpent:      calc.TotalSpent,
		SkippedExpenses: calc.SkippedExpenses,
		Tolerance:       tolerance,
		ComputedAt:      uc.now().UTC(),
	}

	if err := Verify(calc.Balances, transfers, tolerance); err != nil {
		uc.metrics.SettlementError("residual")
		uc.logger.Warn().Err(err).Str("settlement_id", result.ID).Msg("settlement left residual balances")
	}

	uc.metrics.ObserveSettlement(time.Since(start), len(transfers))
	uc.metrics.ExpensesSkipped(calc.SkippedExpenses)

	uc.logger.Debug().
		Str("settlement_id", result.ID).
		Int("expenses", len(input.Expenses)).
		Int("participants", len(calc.Participants)).
		Int("transfers", len(transfers)).
		Int("skipped", calc.SkippedExpenses).
		Msg("settlement computed")

	uc.store(ctx, key, result)

	return result, nil
}

func (uc *SettlementUseCase) validate(expenses []domain.Expense) error {
	if err := domain.ValidateExpenses(expenses, uc.maxExpenses); err != nil {
		uc.metrics.SettlementError("validation")
		return err
	}
	return nil
}

func calculate(expenses []domain.Expense) *BalancesResult {
	participants := settlement.ResolveParticipants(expenses)
	result := &BalancesResult{
		Participants: participants,
		Balances:     settlement.CalculateBalances(expenses, participants),
	}

	for _, expense := range expenses {
		if len(settlement.Involved(expense, participants)) == 0 {
			result.SkippedExpenses++
			continue
		}
		result.TotalSpent += expense.Amount
	}

	return result
}

func (uc *SettlementUseCase) lookup(ctx context.Context, key string) (*SettlementResult, bool) {
	if uc.cache == nil {
		return nil, false
	}

	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("key", key).Msg("settlement cache lookup failed")
		}
		uc.metrics.CacheLookup(false)
		return nil, false
	}

	var result SettlementResult
	if err := json.Unmarshal(data, &result); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached settlement")
		if err := uc.cache.Delete(ctx, key); err != nil {
			uc.logger.Warn().Err(err).Str("key", key).Msg("failed to evict cached settlement")
		}
		uc.metrics.CacheLookup(false)
		return nil, false
	}

	result.Cached = true
	uc.metrics.CacheLookup(true)

	return &result, true
}

func (uc *SettlementUseCase) store(ctx context.Context, key string, result *SettlementResult) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to encode settlement for cache")
		return
	}

	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("failed to cache settlement")
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveSettlement(time.Duration, int) {}
func (nopMetrics) ExpensesSkipped(int)                  {}
func (nopMetrics) CacheLookup(bool)                     {}
func (nopMetrics) SettlementError(string)               {}
