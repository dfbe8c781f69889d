package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Settlement metrics
	SettlementsComputed    prometheus.Counter
	SettlementDuration     prometheus.Histogram
	TransfersPerSettlement prometheus.Histogram
	ExpensesSkippedTotal   prometheus.Counter
	SettlementErrors       *prometheus.CounterVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Redis metrics
	RedisRetries *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all Prometheus metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Settlement metrics
		SettlementsComputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_settlements_computed_total",
			Help: "Total number of settlements computed",
		}),
		SettlementDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitledger_settlement_duration_seconds",
			Help:    "Duration of settlement runs",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		TransfersPerSettlement: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitledger_settlement_transfers",
			Help:    "Number of transfers emitted per settlement",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
		}),
		ExpensesSkippedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_expenses_skipped_total",
			Help: "Total number of expenses skipped because every participant was excluded",
		}),
		SettlementErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_settlement_errors_total",
				Help: "Total number of settlement errors by kind",
			},
			[]string{"kind"},
		),

		// Cache metrics
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_cache_lookups_total",
				Help: "Settlement cache lookups by result",
			},
			[]string{"result"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "splitledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "splitledger_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		// Redis metrics
		RedisRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_redis_retries_total",
				Help: "Total Redis operation retries",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// ObserveSettlement records a computed settlement.
func (m *Metrics) ObserveSettlement(duration time.Duration, transfers int) {
	m.SettlementsComputed.Inc()
	m.SettlementDuration.Observe(duration.Seconds())
	m.TransfersPerSettlement.Observe(float64(transfers))
}

// ExpensesSkipped records expenses that charged nobody.
func (m *Metrics) ExpensesSkipped(n int) {
	if n > 0 {
		m.ExpensesSkippedTotal.Add(float64(n))
	}
}

// CacheLookup records a settlement cache lookup.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// SettlementError records a rejected or suspicious settlement.
func (m *Metrics) SettlementError(kind string) {
	m.SettlementErrors.WithLabelValues(kind).Inc()
}

// RedisRetry records a retried Redis operation.
func (m *Metrics) RedisRetry(operation string) {
	m.RedisRetries.WithLabelValues(operation).Inc()
}
