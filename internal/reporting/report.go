// Package reporting renders a decoded backtest result as Markdown and CSV.
package reporting

import (
	"time"

	"backtest-gateway/internal/domain"
)

// Report is everything a rendered backtest report needs: the request
// parameters it answers, when it was generated, and the decoded result.
type Report struct {
	GeneratedAt    time.Time
	Ticker         string
	Period         string
	InitialCapital float64
	StrategyCount  int
	Result         *domain.BacktestResult
}

// NewReport assembles a report for a completed backtest.
func NewReport(ticker, period string, initialCapital float64, strategyCount int, result *domain.BacktestResult) *Report {
	return &Report{
		GeneratedAt:    time.Now().UTC(),
		Ticker:         ticker,
		Period:         period,
		InitialCapital: initialCapital,
		StrategyCount:  strategyCount,
		Result:         result,
	}
}
