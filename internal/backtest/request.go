// Package backtest models the outbound backtest request: validation of
// user-supplied parameters and serialization of strategy configurations into
// the engine's wire shape. Everything here is a pure function over immutable
// inputs.
package backtest

import (
	"errors"
	"fmt"
	"strconv"

	"backtest-gateway/internal/schema"
	"backtest-gateway/internal/strategy"
)

// ErrBadStrategyPayload is returned by ParseStrategies for an inbound
// strategy entry that does not match the registry's declared shape.
var ErrBadStrategyPayload = errors.New("malformed strategy payload")

// Request is one backtest submission: the ordered working set of strategy
// configurations plus the market parameters. Ephemeral; built right before
// submission and discarded after the call returns.
type Request struct {
	Strategies     []strategy.Config
	Ticker         string
	InitialCapital float64
	Period         string
}

// WireStrategy is the per-strategy wire entry: the variant discriminant plus
// the full parameter bag, identifier and kind included.
type WireStrategy struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params"`
}

// WireRequest is the payload posted to the engine. InitialCapital is
// string-encoded on the wire.
type WireRequest struct {
	Strategies     []WireStrategy `json:"strategies"`
	Ticker         string         `json:"ticker"`
	InitialCapital string         `json:"initial_capital"`
	Period         string         `json:"period"`
}

// SerializeStrategies transforms configs into their wire entries, preserving
// input order. No validation happens here: callers run Validate first, and
// serialization never drops or renames a field.
func SerializeStrategies(configs []strategy.Config) []WireStrategy {
	out := make([]WireStrategy, 0, len(configs))
	for _, c := range configs {
		params := c.Params()
		params["identifier"] = c.Identifier()
		params["kind"] = string(c.Kind())
		out = append(out, WireStrategy{Type: string(c.Kind()), Params: params})
	}
	return out
}

// Wire builds the engine payload for the request.
func (r Request) Wire() WireRequest {
	return WireRequest{
		Strategies:     SerializeStrategies(r.Strategies),
		Ticker:         r.Ticker,
		InitialCapital: strconv.FormatFloat(r.InitialCapital, 'f', -1, 64),
		Period:         r.Period,
	}
}

// ParseStrategies rebuilds typed configs from their wire entries, the inverse
// of SerializeStrategies. Each entry must carry a known variant type, a string
// identifier, and exactly the declared field set (plus the echoed identifier
// and kind); anything else fails with ErrBadStrategyPayload or the underlying
// field error. Round-trip invariant:
// SerializeStrategies(ParseStrategies(SerializeStrategies(x))) equals
// SerializeStrategies(x) for any valid x.
func ParseStrategies(wire []WireStrategy) ([]strategy.Config, error) {
	out := make([]strategy.Config, 0, len(wire))
	for i, w := range wire {
		kind := schema.Kind(w.Type)
		spec, err := schema.Lookup(kind)
		if err != nil {
			return nil, fmt.Errorf("strategy %d: %w: type %q", i, err, w.Type)
		}

		id, ok := w.Params["identifier"].(string)
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: strategy %d has no identifier", ErrBadStrategyPayload, i)
		}

		cfg, err := strategy.Default(kind, id)
		if err != nil {
			return nil, err
		}

		for _, f := range spec.Fields {
			v, ok := w.Params[f.Name]
			if !ok {
				return nil, fmt.Errorf("%w: strategy %d is missing field %q", ErrBadStrategyPayload, i, f.Name)
			}
			raw, err := rawValue(v)
			if err != nil {
				return nil, fmt.Errorf("%w: strategy %d field %q: %v", ErrBadStrategyPayload, i, f.Name, err)
			}
			cfg, err = strategy.SetField(cfg, f.Name, raw)
			if err != nil {
				return nil, fmt.Errorf("strategy %d: %w", i, err)
			}
		}

		// The declared fields plus the echoed identifier/kind is the whole
		// permitted bag; extra keys indicate a shape mismatch.
		for name := range w.Params {
			if name == "identifier" || name == "kind" {
				continue
			}
			if _, ok := spec.FieldByName(name); !ok {
				return nil, fmt.Errorf("%w: strategy %d has undeclared field %q", ErrBadStrategyPayload, i, name)
			}
		}

		out = append(out, cfg)
	}
	return out, nil
}

// rawValue renders a JSON-decoded parameter back to its string form for
// SetField, which owns type checking.
func rawValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
