// Package main runs the backtest gateway: an HTTP service that exposes the
// strategy schema registry to configuration UIs and proxies validated
// backtest requests to the external engine, decoding its columnar trade log
// into row-oriented results.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"backtest-gateway/internal/backtest"
	"backtest-gateway/internal/config"
	"backtest-gateway/internal/engine"
	"backtest-gateway/internal/observability"
	"backtest-gateway/internal/schema"
	"backtest-gateway/internal/tradelog"
)

// Server wires the gateway's components together.
type Server struct {
	cfg     *config.Config
	client  *engine.Client
	metrics *observability.Metrics
	logger  zerolog.Logger
}

// inboundRequest is the payload the configuration UI posts; it mirrors the
// engine wire request so the gateway can re-validate and forward it.
type inboundRequest struct {
	Strategies     []backtest.WireStrategy `json:"strategies"`
	Ticker         string                  `json:"ticker"`
	InitialCapital string                  `json:"initial_capital"`
	Period         string                  `json:"period"`
}

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.With().Str("service", "backtest-gateway").Logger()

	srv := &Server{
		cfg: cfg,
		client: engine.NewClient(engine.ClientOptions{
			BaseURL:         cfg.EngineURL,
			Timeout:         time.Duration(cfg.RequestTimeout) * time.Second,
			RequestsPerSec:  cfg.RequestsPerSec,
			MaxRetryTimeout: time.Duration(cfg.MaxRetrySeconds) * time.Second,
		}),
		metrics: observability.NewMetrics(""),
		logger:  log.With().Str("component", "gateway").Logger(),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware())

	router.GET("/healthz", srv.handleHealth)
	router.GET("/strategies", srv.handleStrategies)
	router.POST("/backtest", srv.handleBacktest)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Str("engine", cfg.EngineURL).Msg("Gateway listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleStrategies serves the registry metadata that drives strategy
// configuration forms: variants with ordered, typed, labeled fields.
func (s *Server) handleStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"variants": schema.Variants()})
}

// handleBacktest validates the inbound request, forwards it to the engine and
// returns the decoded result. Validation failures are the caller's to fix
// (400, single human-readable reason); engine and decode failures are
// upstream faults (502).
func (s *Server) handleBacktest(c *gin.Context) {
	var in inboundRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	configs, err := backtest.ParseStrategies(in.Strategies)
	if err != nil {
		s.metrics.BacktestFailures.WithLabelValues(observability.StageValidate).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	capital, err := parseCapital(in.InitialCapital)
	if err != nil {
		s.metrics.BacktestFailures.WithLabelValues(observability.StageValidate).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "initial capital must be a number"})
		return
	}

	req := backtest.Request{
		Strategies:     configs,
		Ticker:         in.Ticker,
		InitialCapital: capital,
		Period:         in.Period,
	}

	s.metrics.BacktestsSubmitted.Inc()
	start := time.Now()
	result, err := s.client.Run(c.Request.Context(), req)
	s.metrics.EngineRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case backtest.IsValidationError(err):
			s.metrics.BacktestFailures.WithLabelValues(observability.StageValidate).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, tradelog.ErrMalformedTradeLog):
			s.metrics.BacktestFailures.WithLabelValues(observability.StageDecode).Inc()
			s.logger.Error().Err(err).Msg("Rejected inconsistent engine response")
			c.JSON(http.StatusBadGateway, gin.H{"error": "backtest engine returned an inconsistent result"})
		default:
			s.metrics.BacktestFailures.WithLabelValues(observability.StageTransport).Inc()
			s.logger.Error().Err(err).Msg("Engine call failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "backtest engine unavailable"})
		}
		return
	}

	s.metrics.BacktestsSucceeded.Inc()
	s.metrics.TradeRowsDecoded.Add(float64(len(result.Trades)))
	s.metrics.TradeRowsSkipped.Add(float64(result.SkippedRows))
	c.JSON(http.StatusOK, result)
}

// parseCapital accepts the string-encoded initial capital of the wire shape.
// An empty string maps to zero so validation reports the positivity rule.
func parseCapital(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// corsMiddleware mirrors the permissive policy of the engine service, so a
// browser UI can talk to either directly.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
