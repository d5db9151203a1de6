package schema

import (
	"errors"
	"testing"
)

func TestLookup_AllVariants(t *testing.T) {
	for _, kind := range []Kind{KindRSIExtremes, KindMovingAverageCross, KindMACDCross} {
		spec, err := Lookup(kind)
		if err != nil {
			t.Fatalf("Lookup(%s) failed: %v", kind, err)
		}
		if spec.Kind != kind {
			t.Errorf("expected kind %s, got %s", kind, spec.Kind)
		}
		if spec.Label == "" {
			t.Errorf("%s has no label", kind)
		}
		if len(spec.Fields) == 0 {
			t.Errorf("%s declares no fields", kind)
		}
	}
}

func TestLookup_UnknownVariant(t *testing.T) {
	_, err := Lookup(Kind("bollinger_breakout"))
	if !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestFieldNamesUnique(t *testing.T) {
	for _, v := range Variants() {
		seen := make(map[string]bool)
		for _, f := range v.Fields {
			if seen[f.Name] {
				t.Errorf("%s declares field %q twice", v.Kind, f.Name)
			}
			seen[f.Name] = true
		}
	}
}

func TestFieldDefaults(t *testing.T) {
	for _, v := range Variants() {
		for _, f := range v.Fields {
			switch f.Spec.Kind {
			case FieldNumber:
				if _, ok := f.Spec.Default.(float64); !ok {
					t.Errorf("%s.%s: number default is %T, want float64", v.Kind, f.Name, f.Spec.Default)
				}
			case FieldSelect:
				if len(f.Spec.Options) == 0 {
					t.Errorf("%s.%s: select field has no options", v.Kind, f.Name)
				}
				if f.Spec.Default != f.Spec.Options[0] {
					t.Errorf("%s.%s: select default %v is not the first option %q", v.Kind, f.Name, f.Spec.Default, f.Spec.Options[0])
				}
			}
		}
	}
}

func TestRSIPeriodDefault(t *testing.T) {
	spec, err := Lookup(KindRSIExtremes)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	fs, ok := spec.FieldByName("rsi_period")
	if !ok {
		t.Fatal("rsi_period not declared")
	}
	if fs.Default != float64(14) {
		t.Errorf("expected rsi_period default 14, got %v", fs.Default)
	}
}

func TestVariants_ReturnsCopy(t *testing.T) {
	a := Variants()
	a[0] = VariantSpec{Kind: "tampered"}

	b := Variants()
	if b[0].Kind == "tampered" {
		t.Fatal("Variants exposes the registry backing array")
	}
}
