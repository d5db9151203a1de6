package strategy

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"backtest-gateway/internal/schema"
)

// Field mutation errors. All are recoverable: the offending call is rejected
// and the prior config value is unaffected.
var (
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidType   = errors.New("invalid value type")
	ErrInvalidChoice = errors.New("invalid choice")
)

// Default builds a config of the given kind with every declared field set to
// its registry default and the caller-assigned identifier attached.
func Default(kind schema.Kind, identifier string) (Config, error) {
	spec, err := schema.Lookup(kind)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch kind {
	case schema.KindRSIExtremes:
		cfg = RSIExtremes{ID: identifier}
	case schema.KindMovingAverageCross:
		cfg = MovingAverageCross{ID: identifier}
	case schema.KindMACDCross:
		cfg = MACDCross{ID: identifier}
	default:
		return nil, schema.ErrUnknownVariant
	}

	for _, f := range spec.Fields {
		cfg = cfg.set(f.Name, f.Spec.Default)
	}
	return cfg, nil
}

// SetField returns a copy of cfg with one field replaced by the parsed value
// of raw. The input config is never mutated. Fails with ErrUnknownField when
// the field is not declared for the config's kind, ErrInvalidType when a
// number field does not parse to a finite value, and ErrInvalidChoice when a
// select field receives a value outside its declared options. Text fields
// accept any string.
func SetField(cfg Config, field, raw string) (Config, error) {
	spec, err := schema.Lookup(cfg.Kind())
	if err != nil {
		return nil, err
	}

	fieldSpec, ok := spec.FieldByName(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not declared for %s", ErrUnknownField, field, cfg.Kind())
	}

	switch fieldSpec.Kind {
	case schema.FieldNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%w: %q is not a finite number for %q", ErrInvalidType, raw, field)
		}
		return cfg.set(field, n), nil

	case schema.FieldSelect:
		for _, opt := range fieldSpec.Options {
			if raw == opt {
				return cfg.set(field, raw), nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not one of %v for %q", ErrInvalidChoice, raw, fieldSpec.Options, field)

	default: // schema.FieldText
		return cfg.set(field, raw), nil
	}
}
