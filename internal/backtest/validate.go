package backtest

import (
	"errors"
	"regexp"
	"strings"
)

// Validation failure reasons, in the order Validate checks them. The first
// failing reason is the one callers see; validation is advisory to the UI,
// the engine re-validates independently.
var (
	ErrNoStrategies       = errors.New("no strategies provided")
	ErrTickerRequired     = errors.New("ticker is required")
	ErrCapitalNotPositive = errors.New("initial capital must be greater than 0")
	ErrPeriodRequired     = errors.New("period is required")
	ErrInvalidPeriod      = errors.New("invalid period format, supported periods: 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max")
	ErrDuplicateStrategy  = errors.New("duplicate strategy identifier")
)

// periodPattern is the historical-range grammar: digits followed by one of
// d/m/y/mo, or the literals ytd/max, case-insensitive.
var periodPattern = regexp.MustCompile(`(?i)^(\d+(d|m|y|mo)|ytd|max)$`)

// Validate checks the request against the submission rules. Checks run in a
// fixed, observable order and short-circuit on the first failure. Pure: no
// mutation, no I/O.
func (r Request) Validate() error {
	if len(r.Strategies) == 0 {
		return ErrNoStrategies
	}
	if r.Ticker == "" {
		return ErrTickerRequired
	}
	if !(r.InitialCapital > 0) { // NaN fails here too
		return ErrCapitalNotPositive
	}
	if r.Period == "" {
		return ErrPeriodRequired
	}
	if !periodPattern.MatchString(strings.TrimSpace(r.Period)) {
		return ErrInvalidPeriod
	}

	// Request invariant: identifiers are unique within one submission.
	// Checked last so the five reasons above keep their observable order.
	seen := make(map[string]struct{}, len(r.Strategies))
	for _, c := range r.Strategies {
		if _, dup := seen[c.Identifier()]; dup {
			return ErrDuplicateStrategy
		}
		seen[c.Identifier()] = struct{}{}
	}
	return nil
}

// IsValidationError reports whether err is one of the submission-rule
// reasons, as opposed to a transport or decode failure.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrNoStrategies,
		ErrTickerRequired,
		ErrCapitalNotPositive,
		ErrPeriodRequired,
		ErrInvalidPeriod,
		ErrDuplicateStrategy,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
