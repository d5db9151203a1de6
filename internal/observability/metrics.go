// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	BacktestsSubmitted prometheus.Counter
	BacktestsSucceeded prometheus.Counter
	BacktestFailures   *prometheus.CounterVec // by stage: validate | transport | decode

	TradeRowsDecoded prometheus.Counter
	TradeRowsSkipped prometheus.Counter

	EngineRequestDuration prometheus.Histogram
}

// Failure stages for BacktestFailures.
const (
	StageValidate  = "validate"
	StageTransport = "transport"
	StageDecode    = "decode"
)

// NewMetrics creates a Metrics instance with all metrics registered on the
// default registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "backtest_gateway"
	}

	return &Metrics{
		BacktestsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backtests_submitted_total",
			Help:      "Backtest requests accepted for submission",
		}),
		BacktestsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backtests_succeeded_total",
			Help:      "Backtest requests that returned a decoded result",
		}),
		BacktestFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backtest_failures_total",
			Help:      "Backtest failures by stage",
		}, []string{"stage"}),
		TradeRowsDecoded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trade_rows_decoded_total",
			Help:      "Trade-log rows decoded into trades",
		}),
		TradeRowsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trade_rows_skipped_total",
			Help:      "Trade-log rows excluded for missing columnar entries",
		}),
		EngineRequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_request_duration_seconds",
			Help:      "Wall time of engine backtest calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
