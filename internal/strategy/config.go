// Package strategy models configured strategy instances as a closed tagged
// union over the variants declared in the schema registry. Configs are plain
// values: every mutation goes through SetField, which returns a new value and
// leaves its input untouched.
package strategy

import "backtest-gateway/internal/schema"

// Config is one configured strategy instance. Exactly three concrete types
// implement it, one per schema.Kind. Sites that inspect the kind switch over
// the concrete types so the compiler flags a missing case when a variant is
// added.
type Config interface {
	// Kind returns the variant discriminant. Immutable once created.
	Kind() schema.Kind

	// Identifier returns the caller-assigned id, unique within one request.
	Identifier() string

	// Params returns the variant-specific parameters as a fresh map whose key
	// set exactly matches the fields declared for the kind in the registry.
	Params() map[string]any

	// set returns a copy with one field replaced. The value is already
	// coerced and checked against the field spec by SetField.
	set(name string, value any) Config
}

// RSIExtremes trades oversold/overbought reversals of the RSI indicator.
type RSIExtremes struct {
	ID                  string
	RSIPeriod           float64
	OverboughtThreshold float64
	OversoldThreshold   float64
}

func (c RSIExtremes) Kind() schema.Kind  { return schema.KindRSIExtremes }
func (c RSIExtremes) Identifier() string { return c.ID }

func (c RSIExtremes) Params() map[string]any {
	return map[string]any{
		"rsi_period":           c.RSIPeriod,
		"overbought_threshold": c.OverboughtThreshold,
		"oversold_threshold":   c.OversoldThreshold,
	}
}

func (c RSIExtremes) set(name string, value any) Config {
	switch name {
	case "rsi_period":
		c.RSIPeriod = value.(float64)
	case "overbought_threshold":
		c.OverboughtThreshold = value.(float64)
	case "oversold_threshold":
		c.OversoldThreshold = value.(float64)
	}
	return c
}

// MovingAverageCross trades crossovers of a faster moving average over a
// slower one. MAType selects the averaging method (SMA or EMA).
type MovingAverageCross struct {
	ID          string
	LowerPeriod float64
	UpperPeriod float64
	MAType      string
}

func (c MovingAverageCross) Kind() schema.Kind  { return schema.KindMovingAverageCross }
func (c MovingAverageCross) Identifier() string { return c.ID }

func (c MovingAverageCross) Params() map[string]any {
	return map[string]any{
		"lower_period": c.LowerPeriod,
		"upper_period": c.UpperPeriod,
		"ma_type":      c.MAType,
	}
}

func (c MovingAverageCross) set(name string, value any) Config {
	switch name {
	case "lower_period":
		c.LowerPeriod = value.(float64)
	case "upper_period":
		c.UpperPeriod = value.(float64)
	case "ma_type":
		c.MAType = value.(string)
	}
	return c
}

// MACDCross trades crossovers of the MACD line over its signal line.
type MACDCross struct {
	ID           string
	ShortPeriod  float64
	LongPeriod   float64
	SignalPeriod float64
}

func (c MACDCross) Kind() schema.Kind  { return schema.KindMACDCross }
func (c MACDCross) Identifier() string { return c.ID }

func (c MACDCross) Params() map[string]any {
	return map[string]any{
		"short_period":  c.ShortPeriod,
		"long_period":   c.LongPeriod,
		"signal_period": c.SignalPeriod,
	}
}

func (c MACDCross) set(name string, value any) Config {
	switch name {
	case "short_period":
		c.ShortPeriod = value.(float64)
	case "long_period":
		c.LongPeriod = value.(float64)
	case "signal_period":
		c.SignalPeriod = value.(float64)
	}
	return c
}
