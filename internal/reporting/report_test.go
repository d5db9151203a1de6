package reporting

import (
	"strings"
	"testing"
	"time"

	"backtest-gateway/internal/domain"
)

func sampleResult() *domain.BacktestResult {
	return &domain.BacktestResult{
		BacktestStats: domain.BacktestStats{
			TotalReturn:  0.42,
			TotalTrades:  2,
			WinRate:      1,
			FinalCapital: 14200,
		},
		Trades: []domain.Trade{
			{
				EntryDate:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				ExitDate:   time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
				EntryPrice: 100, ExitPrice: 110, Return: 0.1, Duration: 31,
			},
			{
				EntryDate:  time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
				ExitDate:   time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
				EntryPrice: 120, ExitPrice: 130, Return: 0.083, Duration: 31,
			},
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	report := NewReport("AAPL", "1y", 10000, 1, sampleResult())
	md := RenderMarkdown(report)

	for _, want := range []string{
		"# Backtest Report",
		"Ticker: AAPL | Period: 1y",
		"| Total Return | 0.4200 |",
		"| 2023-01-01 | 2023-02-01 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderMarkdown_SkippedRowsWarning(t *testing.T) {
	result := sampleResult()
	result.SkippedRows = 1

	md := RenderMarkdown(NewReport("AAPL", "1y", 10000, 1, result))
	if !strings.Contains(md, "1 incomplete trade-log rows were excluded") {
		t.Error("markdown missing skipped-rows warning")
	}
}

func TestRenderMarkdown_NoTrades(t *testing.T) {
	result := &domain.BacktestResult{}
	md := RenderMarkdown(NewReport("AAPL", "1y", 10000, 1, result))
	if !strings.Contains(md, "No trades.") {
		t.Error("markdown missing empty-trades notice")
	}
}

func TestRenderTradesCSV(t *testing.T) {
	out := RenderTradesCSV(sampleResult().Trades)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "entry_date,exit_date,entry_price,exit_price,return,duration" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2023-01-01,2023-02-01,100.000000,110.000000,0.100000,31") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}
