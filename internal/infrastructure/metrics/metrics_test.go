package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.SettlementsComputed == nil || m.HTTPRequests == nil || m.CacheLookups == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.ObserveSettlement(time.Millisecond, 2)
	m.CacheLookup(true)
	m.SettlementError("validation")
	m.RedisRetry("get")

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}

func TestRecorder(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSettlement(2*time.Millisecond, 3)
	m.ObserveSettlement(time.Millisecond, 0)
	m.ExpensesSkipped(2)
	m.ExpensesSkipped(0)
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)
	m.SettlementError("residual")

	if got := testutil.ToFloat64(m.SettlementsComputed); got != 2 {
		t.Fatalf("expected 2 settlements, got %v", got)
	}
	if got := testutil.ToFloat64(m.ExpensesSkippedTotal); got != 2 {
		t.Fatalf("expected 2 skipped expenses, got %v", got)
	}
	if got := testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")); got != 1 {
		t.Fatalf("expected 1 cache hit, got %v", got)
	}
	if got := testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")); got != 2 {
		t.Fatalf("expected 2 cache misses, got %v", got)
	}
	if got := testutil.ToFloat64(m.SettlementErrors.WithLabelValues("residual")); got != 1 {
		t.Fatalf("expected 1 residual error, got %v", got)
	}
	if got := testutil.CollectAndCount(m.TransfersPerSettlement); got != 1 {
		t.Fatalf("expected transfers histogram to be collected, got %d", got)
	}
}
