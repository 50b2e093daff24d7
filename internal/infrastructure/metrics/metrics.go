package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction log metrics
	TransactionsRecorded *prometheus.CounterVec
	TransactionErrors    *prometheus.CounterVec

	// Price log metrics
	PricesRecorded prometheus.Counter

	// Holdings metrics
	HoldingsReplayDuration prometheus.Histogram

	// Rebalance metrics
	RebalancePlans    prometheus.Counter
	RebalanceLegs     prometheus.Histogram
	RebalanceDuration prometheus.Histogram

	// Portfolio metrics
	PortfoliosCreated  prometheus.Counter
	AllocationsWritten prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finfolio_transactions_recorded_total",
				Help: "Total transactions appended to the log by kind",
			},
			[]string{"kind"},
		),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finfolio_transaction_errors_total",
				Help: "Total rejected transaction submissions by reason",
			},
			[]string{"reason"},
		),

		PricesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finfolio_prices_recorded_total",
			Help: "Total price observations appended to the log",
		}),

		HoldingsReplayDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finfolio_holdings_replay_duration_seconds",
			Help:    "Duration of full transaction log replays",
			Buckets: prometheus.DefBuckets,
		}),

		RebalancePlans: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finfolio_rebalance_plans_total",
			Help: "Total rebalance plans computed",
		}),
		RebalanceLegs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finfolio_rebalance_legs",
			Help:    "Number of legs per rebalance plan",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		RebalanceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finfolio_rebalance_duration_seconds",
			Help:    "Duration of rebalance suggestions",
			Buckets: prometheus.DefBuckets,
		}),

		PortfoliosCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finfolio_portfolios_created_total",
			Help: "Total portfolios created",
		}),
		AllocationsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finfolio_allocations_written_total",
			Help: "Total allocation rows written by replace-all updates",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finfolio_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finfolio_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finfolio_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
	}
}
