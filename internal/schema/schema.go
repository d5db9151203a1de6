// Package schema holds the static catalog of supported strategy variants:
// which typed fields each variant declares, their display labels, allowed
// choices for select fields, and default values. The registry is built once
// at package init and never mutated.
package schema

import "errors"

// Kind identifies one strategy variant. The set is closed: adding a variant
// means adding a constant here, a VariantSpec below, and a concrete config
// type in the strategy package.
type Kind string

const (
	KindRSIExtremes        Kind = "rsi_extremes"
	KindMovingAverageCross Kind = "moving_average_cross"
	KindMACDCross          Kind = "macd_cross"
)

// FieldKind describes how a field value is typed and rendered.
type FieldKind string

const (
	FieldNumber FieldKind = "number"
	FieldText   FieldKind = "text"
	FieldSelect FieldKind = "select"
)

// ErrUnknownVariant is returned when a kind is outside the closed variant set.
var ErrUnknownVariant = errors.New("unknown strategy variant")

// FieldSpec describes one configurable field of a variant.
type FieldSpec struct {
	Label   string    `json:"label"`
	Kind    FieldKind `json:"type"`
	Options []string  `json:"options,omitempty"` // select fields only, ordered, non-empty
	Default any       `json:"default"`           // float64 for number, string otherwise
}

// Field pairs a field name with its spec. Variants declare fields as an
// ordered slice so form rendering and serialization stay deterministic.
type Field struct {
	Name string    `json:"name"`
	Spec FieldSpec `json:"spec"`
}

// VariantSpec describes one strategy variant: display label plus its ordered
// field declarations. Field names within a variant are unique.
type VariantSpec struct {
	Kind   Kind    `json:"kind"`
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`
}

// FieldByName returns the spec declared for name, if any.
func (v VariantSpec) FieldByName(name string) (FieldSpec, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Spec, true
		}
	}
	return FieldSpec{}, false
}

// FieldNames returns the declared field names in declaration order.
func (v VariantSpec) FieldNames() []string {
	names := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		names[i] = f.Name
	}
	return names
}

// registry is the process-wide variant catalog. Read-only after init.
var registry = []VariantSpec{
	{
		Kind:  KindRSIExtremes,
		Label: "RSI Extremes",
		Fields: []Field{
			{Name: "rsi_period", Spec: FieldSpec{Label: "RSI Period", Kind: FieldNumber, Default: float64(14)}},
			{Name: "overbought_threshold", Spec: FieldSpec{Label: "Overbought Threshold", Kind: FieldNumber, Default: float64(70)}},
			{Name: "oversold_threshold", Spec: FieldSpec{Label: "Oversold Threshold", Kind: FieldNumber, Default: float64(30)}},
		},
	},
	{
		Kind:  KindMovingAverageCross,
		Label: "Moving Average Cross",
		Fields: []Field{
			{Name: "lower_period", Spec: FieldSpec{Label: "Lower Period", Kind: FieldNumber, Default: float64(50)}},
			{Name: "upper_period", Spec: FieldSpec{Label: "Upper Period", Kind: FieldNumber, Default: float64(200)}},
			{Name: "ma_type", Spec: FieldSpec{Label: "MA Type", Kind: FieldSelect, Options: []string{"SMA", "EMA"}, Default: "SMA"}},
		},
	},
	{
		Kind:  KindMACDCross,
		Label: "MACD Cross",
		Fields: []Field{
			{Name: "short_period", Spec: FieldSpec{Label: "Short Period", Kind: FieldNumber, Default: float64(12)}},
			{Name: "long_period", Spec: FieldSpec{Label: "Long Period", Kind: FieldNumber, Default: float64(26)}},
			{Name: "signal_period", Spec: FieldSpec{Label: "Signal Period", Kind: FieldNumber, Default: float64(9)}},
		},
	},
}

// Lookup returns the spec for kind, or ErrUnknownVariant.
func Lookup(kind Kind) (VariantSpec, error) {
	for _, v := range registry {
		if v.Kind == kind {
			return v, nil
		}
	}
	return VariantSpec{}, ErrUnknownVariant
}

// Variants returns all variant specs in declaration order. The returned slice
// is a copy; callers may not reach the registry itself.
func Variants() []VariantSpec {
	out := make([]VariantSpec, len(registry))
	copy(out, registry)
	return out
}
