package reporting

import (
	"fmt"
	"strings"

	"backtest-gateway/internal/domain"
)

// RenderTradesCSV renders decoded trades as a CSV string, one row per trade
// in decode order.
func RenderTradesCSV(trades []domain.Trade) string {
	var sb strings.Builder

	sb.WriteString("entry_date,exit_date,entry_price,exit_price,return,duration\n")

	for _, t := range trades {
		sb.WriteString(fmt.Sprintf("%s,%s,%.6f,%.6f,%.6f,%d\n",
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
