// Package tradelog decodes the engine's columnar trade log. The wire shape is
// six parallel mappings keyed by stringified row index; the decoder aligns
// them by key intersection, sorts the surviving indices numerically and emits
// one row-oriented Trade per index.
package tradelog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"backtest-gateway/internal/domain"
)

// ErrMalformedTradeLog is returned when the payload is internally
// inconsistent: an unparseable date, a non-finite number, a negative or
// fractional duration, or a row index that is not an integer. The whole
// decode aborts; a malformed payload is a protocol mismatch, not a
// missing-row situation.
var ErrMalformedTradeLog = errors.New("malformed trade log")

// RawTradeLog is the engine's columnar trade-log wire shape.
type RawTradeLog struct {
	EntryDate  map[string]string  `json:"entry_date"`
	ExitDate   map[string]string  `json:"exit_date"`
	EntryPrice map[string]float64 `json:"entry_price"`
	ExitPrice  map[string]float64 `json:"exit_price"`
	Return     map[string]float64 `json:"return"`
	Duration   map[string]float64 `json:"duration"`
}

// Accepted date layouts. The engine emits plain ISO dates; pandas-style
// timestamps and RFC3339 also appear in the wild.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Decode pivots the columnar log into row-oriented trades ordered by
// ascending numeric row index. Rows missing from any one of the six mappings
// are excluded from the output and counted in skipped; they are a warning for
// the caller, never a silent drop. Returns ErrMalformedTradeLog when any
// surviving row fails to parse.
func Decode(raw RawTradeLog) (trades []domain.Trade, skipped int, err error) {
	// Union of keys across all six mappings, so rows present in only some
	// mappings are seen and counted rather than ignored.
	union := make(map[string]struct{})
	for k := range raw.EntryDate {
		union[k] = struct{}{}
	}
	for k := range raw.ExitDate {
		union[k] = struct{}{}
	}
	for k := range raw.EntryPrice {
		union[k] = struct{}{}
	}
	for k := range raw.ExitPrice {
		union[k] = struct{}{}
	}
	for k := range raw.Return {
		union[k] = struct{}{}
	}
	for k := range raw.Duration {
		union[k] = struct{}{}
	}

	// Intersection: keep only rows complete in every mapping.
	indices := make([]int, 0, len(union))
	for k := range union {
		if !complete(raw, k) {
			skipped++
			continue
		}
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: row index %q is not an integer", ErrMalformedTradeLog, k)
		}
		indices = append(indices, idx)
	}

	// Numeric order, not lexical: row "10" sorts after row "2".
	sort.Ints(indices)

	trades = make([]domain.Trade, 0, len(indices))
	for _, idx := range indices {
		k := strconv.Itoa(idx)

		entryDate, err := parseDate(raw.EntryDate[k])
		if err != nil {
			return nil, 0, fmt.Errorf("%w: row %d entry_date: %v", ErrMalformedTradeLog, idx, err)
		}
		exitDate, err := parseDate(raw.ExitDate[k])
		if err != nil {
			return nil, 0, fmt.Errorf("%w: row %d exit_date: %v", ErrMalformedTradeLog, idx, err)
		}

		for name, v := range map[string]float64{
			"entry_price": raw.EntryPrice[k],
			"exit_price":  raw.ExitPrice[k],
			"return":      raw.Return[k],
			"duration":    raw.Duration[k],
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, 0, fmt.Errorf("%w: row %d %s is not finite", ErrMalformedTradeLog, idx, name)
			}
		}

		dur := raw.Duration[k]
		if dur < 0 || dur != math.Trunc(dur) {
			return nil, 0, fmt.Errorf("%w: row %d duration %v is not a non-negative integer", ErrMalformedTradeLog, idx, dur)
		}

		trades = append(trades, domain.Trade{
			EntryDate:  entryDate,
			ExitDate:   exitDate,
			EntryPrice: raw.EntryPrice[k],
			ExitPrice:  raw.ExitPrice[k],
			Return:     raw.Return[k],
			Duration:   int(dur),
		})
	}

	return trades, skipped, nil
}

// complete reports whether row k is present in all six mappings.
func complete(raw RawTradeLog, k string) bool {
	if _, ok := raw.EntryDate[k]; !ok {
		return false
	}
	if _, ok := raw.ExitDate[k]; !ok {
		return false
	}
	if _, ok := raw.EntryPrice[k]; !ok {
		return false
	}
	if _, ok := raw.ExitPrice[k]; !ok {
		return false
	}
	if _, ok := raw.Return[k]; !ok {
		return false
	}
	if _, ok := raw.Duration[k]; !ok {
		return false
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a calendar date", s)
}
