package domain

// BacktestStats holds the aggregate statistics computed by the backtest
// engine. The gateway types them and passes them through; it never recomputes
// them.
type BacktestStats struct {
	TotalReturn       float64 `json:"total_return"`
	TotalTrades       int     `json:"total_trades"`
	WinningTrades     int     `json:"winning_trades"`
	LosingTrades      int     `json:"losing_trades"`
	WinRate           float64 `json:"win_rate"`
	AvgReturnPerTrade float64 `json:"avg_return_per_trade"`
	AvgWinningTrade   float64 `json:"avg_winning_trade"`
	AvgLosingTrade    float64 `json:"avg_losing_trade"`
	MaxDrawdown       float64 `json:"max_drawdown"`
	SharpeRatio       float64 `json:"sharpe_ratio"`
	FinalCapital      float64 `json:"final_capital"`
}

// BacktestResult is one complete engine response after decoding: the
// aggregate statistics plus the row-oriented trade log. Immutable once built.
// SkippedRows counts trade-log rows that were incomplete across the columnar
// mappings and therefore excluded from Trades.
type BacktestResult struct {
	BacktestStats
	Trades      []Trade `json:"trades"`
	SkippedRows int     `json:"skipped_rows,omitempty"`
}
