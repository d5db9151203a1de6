// Package main provides a one-shot CLI for running a backtest against the
// engine: assemble strategies from flags, submit, and print or write the
// decoded result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"backtest-gateway/internal/backtest"
	"backtest-gateway/internal/config"
	"backtest-gateway/internal/engine"
	"backtest-gateway/internal/idgen"
	"backtest-gateway/internal/reporting"
	"backtest-gateway/internal/schema"
	"backtest-gateway/internal/session"
	"backtest-gateway/internal/strategy"
)

// strategySpecs collects repeated -strategy flags. Each value is a variant
// kind, optionally followed by field overrides:
//
//	-strategy rsi_extremes
//	-strategy "moving_average_cross:lower_period=20,upper_period=60,ma_type=EMA"
type strategySpecs []string

func (s *strategySpecs) String() string { return strings.Join(*s, "; ") }

func (s *strategySpecs) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var specs strategySpecs
	flag.Var(&specs, "strategy", "Strategy to run: kind[:field=value,...] (repeatable, required)")
	ticker := flag.String("ticker", "", "Ticker symbol (required)")
	period := flag.String("period", "1y", "Historical period (1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max)")
	capital := flag.Float64("capital", 10000, "Initial capital")
	engineURL := flag.String("engine-url", "", "Backtest engine base URL (defaults to ENGINE_URL)")
	outputJSON := flag.Bool("json", false, "Print the result as JSON")
	outputDir := flag.String("output", "", "Write markdown and CSV reports to this directory")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	logger := log.With().Str("component", "backtestctl").Logger()

	cfg := config.Load()
	if *engineURL == "" {
		*engineURL = cfg.EngineURL
	}

	if len(specs) == 0 {
		logger.Fatal().Msg("--strategy is required")
	}
	if *ticker == "" {
		logger.Fatal().Msg("--ticker is required")
	}

	working := session.NewWorkingSet()
	for _, spec := range specs {
		sc, err := buildStrategy(spec)
		if err != nil {
			logger.Fatal().Err(err).Str("spec", spec).Msg("Bad strategy spec")
		}
		if err := working.Add(sc); err != nil {
			logger.Fatal().Err(err).Msg("Could not add strategy")
		}
	}

	client := engine.NewClient(engine.ClientOptions{
		BaseURL:        *engineURL,
		Timeout:        time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
	})

	req := backtest.Request{
		Strategies:     working.Configs(),
		Ticker:         *ticker,
		InitialCapital: *capital,
		Period:         *period,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := client.Run(ctx, req)
	if err != nil {
		logger.Fatal().Err(err).Msg("Backtest failed")
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Fatal().Err(err).Msg("Could not encode result")
		}
		return
	}

	report := reporting.NewReport(*ticker, *period, *capital, working.Len(), result)

	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0o755); err != nil {
			logger.Fatal().Err(err).Msg("Could not create output directory")
		}
		mdPath := filepath.Join(*outputDir, "report.md")
		csvPath := filepath.Join(*outputDir, "trades.csv")
		if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
			logger.Fatal().Err(err).Msg("Could not write markdown report")
		}
		if err := os.WriteFile(csvPath, []byte(reporting.RenderTradesCSV(result.Trades)), 0o644); err != nil {
			logger.Fatal().Err(err).Msg("Could not write trades CSV")
		}
		fmt.Printf("Wrote %s and %s\n", mdPath, csvPath)
		return
	}

	fmt.Print(reporting.RenderMarkdown(report))
}

// buildStrategy turns one -strategy spec into a config: registry defaults
// first, then the field overrides in order.
func buildStrategy(spec string) (strategy.Config, error) {
	kindPart, overridePart, hasOverrides := strings.Cut(spec, ":")
	kind := schema.Kind(strings.TrimSpace(kindPart))

	cfg, err := strategy.Default(kind, idgen.New(kind))
	if err != nil {
		return nil, err
	}

	if !hasOverrides {
		return cfg, nil
	}

	for _, pair := range strings.Split(overridePart, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("override %q is not field=value", pair)
		}
		cfg, err = strategy.SetField(cfg, strings.TrimSpace(name), strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
