package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString("# Backtest Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Ticker: %s | Period: %s | Strategies: %d | Initial Capital: %.2f\n\n",
		r.Ticker, r.Period, r.StrategyCount, r.InitialCapital))

	stats := r.Result.BacktestStats
	sb.WriteString("## Aggregate Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Return | %.4f |\n", stats.TotalReturn))
	sb.WriteString(fmt.Sprintf("| Total Trades | %d |\n", stats.TotalTrades))
	sb.WriteString(fmt.Sprintf("| Winning Trades | %d |\n", stats.WinningTrades))
	sb.WriteString(fmt.Sprintf("| Losing Trades | %d |\n", stats.LosingTrades))
	sb.WriteString(fmt.Sprintf("| Win Rate | %.4f |\n", stats.WinRate))
	sb.WriteString(fmt.Sprintf("| Avg Return Per Trade | %.4f |\n", stats.AvgReturnPerTrade))
	sb.WriteString(fmt.Sprintf("| Avg Winning Trade | %.4f |\n", stats.AvgWinningTrade))
	sb.WriteString(fmt.Sprintf("| Avg Losing Trade | %.4f |\n", stats.AvgLosingTrade))
	sb.WriteString(fmt.Sprintf("| Max Drawdown | %.4f |\n", stats.MaxDrawdown))
	sb.WriteString(fmt.Sprintf("| Sharpe Ratio | %.4f |\n", stats.SharpeRatio))
	sb.WriteString(fmt.Sprintf("| Final Capital | %.2f |\n", stats.FinalCapital))
	sb.WriteString("\n")

	sb.WriteString("## Trades\n\n")
	if r.Result.SkippedRows > 0 {
		sb.WriteString(fmt.Sprintf("Warning: %d incomplete trade-log rows were excluded.\n\n", r.Result.SkippedRows))
	}
	if len(r.Result.Trades) == 0 {
		sb.WriteString("No trades.\n")
		return sb.String()
	}

	sb.WriteString("| Entry Date | Exit Date | Entry Price | Exit Price | Return | Duration |\n")
	sb.WriteString("|------------|-----------|-------------|------------|--------|----------|\n")
	for _, t := range r.Result.Trades {
		sb.WriteString(fmt.Sprintf("| %s | %s | %.4f | %.4f | %.4f | %d |\n",
			t.EntryDate.Format("2006-01-02"),
			t.ExitDate.Format("2006-01-02"),
			t.EntryPrice,
			t.ExitPrice,
			t.Return,
			t.Duration,
		))
	}

	return sb.String()
}
