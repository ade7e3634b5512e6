package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transfer metrics
	TransfersCreated   *prometheus.CounterVec
	TransfersConfirmed prometheus.Counter
	TransfersRejected  prometheus.Counter
	TransfersMatched   prometheus.Counter
	TransfersDeleted   prometheus.Counter
	TransferAmounts    prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransfersCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerly_transfers_created_total",
				Help: "Total number of transfers created by initial status",
			},
			[]string{"status"},
		),
		TransfersConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerly_transfers_confirmed_total",
			Help: "Total number of transfers confirmed",
		}),
		TransfersRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerly_transfers_rejected_total",
			Help: "Total number of transfers rejected",
		}),
		TransfersMatched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerly_transfers_matched_total",
			Help: "Total number of transfers inferred by the matcher",
		}),
		TransfersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerly_transfers_deleted_total",
			Help: "Total number of transfers deleted",
		}),
		TransferAmounts: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerly_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerly_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgerly_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerly_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerly_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerly_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}

// TransferCreated implements usecase.TransferMetrics.
func (m *Metrics) TransferCreated(status domain.TransferStatus, amount decimal.Decimal) {
	m.TransfersCreated.WithLabelValues(string(status)).Inc()
	m.TransferAmounts.Observe(amount.InexactFloat64())
}

// TransferConfirmed implements usecase.TransferMetrics.
func (m *Metrics) TransferConfirmed() {
	m.TransfersConfirmed.Inc()
}

// TransferRejected implements usecase.TransferMetrics.
func (m *Metrics) TransferRejected() {
	m.TransfersRejected.Inc()
}

// TransferMatched implements usecase.TransferMetrics.
func (m *Metrics) TransferMatched() {
	m.TransfersMatched.Inc()
}

// TransferDeleted implements usecase.TransferMetrics.
func (m *Metrics) TransferDeleted() {
	m.TransfersDeleted.Inc()
}
