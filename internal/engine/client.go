// Package engine is the HTTP client for the external backtest engine: the
// single asynchronous boundary of the system. It validates and serializes a
// request, submits it, and decodes the columnar response into a
// BacktestResult. Transport failures never reach the decoder.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"backtest-gateway/internal/backtest"
	"backtest-gateway/internal/domain"
	"backtest-gateway/internal/tradelog"
)

// Client talks to the backtest engine with rate limiting and retries.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	limiter         *rate.Limiter
	maxRetryTimeout time.Duration
	logger          zerolog.Logger
}

// ClientOptions holds options for creating a new Client.
type ClientOptions struct {
	BaseURL         string
	Timeout         time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new engine client.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}
	if opts.MaxRetryTimeout == 0 {
		opts.MaxRetryTimeout = 30 * time.Second
	}

	return &Client{
		baseURL:         opts.BaseURL,
		httpClient:      &http.Client{Timeout: opts.Timeout},
		limiter:         rate.NewLimiter(rate.Every(time.Second), opts.RequestsPerSec),
		maxRetryTimeout: opts.MaxRetryTimeout,
		logger:          log.With().Str("component", "engine_client").Logger(),
	}
}

// HTTPStatusError represents a non-200 engine response.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("engine returned HTTP %d: %s", e.StatusCode, e.Body)
}

// wireResponse is the engine's response payload: the aggregate statistics at
// the top level plus the columnar trade log under "trades".
type wireResponse struct {
	domain.BacktestStats
	Trades tradelog.RawTradeLog `json:"trades"`
}

// Run validates req, submits it to the engine and returns the decoded result.
// Validation failures surface the backtest package's reasons unchanged.
// Client errors (4xx) are permanent; network errors and 5xx are retried with
// exponential backoff until the retry budget runs out.
func (c *Client) Run(ctx context.Context, req backtest.Request) (*domain.BacktestResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req.Wire())
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	c.logger.Debug().
		Str("ticker", req.Ticker).
		Str("period", req.Period).
		Int("strategies", len(req.Strategies)).
		Msg("Submitting backtest")

	var body []byte
	operation := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/backtest", bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			statusErr := &HTTPStatusError{StatusCode: resp.StatusCode, Body: string(b)}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(statusErr)
			}
			return statusErr
		}
		body = b
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = c.maxRetryTimeout
	if err := backoff.Retry(operation, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		c.logger.Error().Err(err).Msg("Engine request failed")
		return nil, err
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("parsing engine response: %w", err)
	}

	trades, skipped, err := tradelog.Decode(wire.Trades)
	if err != nil {
		c.logger.Error().Err(err).Msg("Engine returned an inconsistent trade log")
		return nil, err
	}
	if skipped > 0 {
		c.logger.Warn().Int("skipped_rows", skipped).Msg("Excluded incomplete trade-log rows")
	}

	return &domain.BacktestResult{
		BacktestStats: wire.BacktestStats,
		Trades:        trades,
		SkippedRows:   skipped,
	}, nil
}
