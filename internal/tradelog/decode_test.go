package tradelog

import (
	"errors"
	"math"
	"testing"
	"time"

	"backtest-gateway/internal/domain"
)

// completeLog builds a raw log where every listed index has all six fields.
func completeLog(indices ...string) RawTradeLog {
	raw := RawTradeLog{
		EntryDate:  make(map[string]string),
		ExitDate:   make(map[string]string),
		EntryPrice: make(map[string]float64),
		ExitPrice:  make(map[string]float64),
		Return:     make(map[string]float64),
		Duration:   make(map[string]float64),
	}
	for i, k := range indices {
		raw.EntryDate[k] = "2023-01-01"
		raw.ExitDate[k] = "2023-02-01"
		raw.EntryPrice[k] = 100 + float64(i)
		raw.ExitPrice[k] = 110 + float64(i)
		raw.Return[k] = 0.1
		raw.Duration[k] = 31
	}
	return raw
}

func TestDecode_SingleRow(t *testing.T) {
	raw := RawTradeLog{
		EntryDate:  map[string]string{"0": "2023-01-01"},
		ExitDate:   map[string]string{"0": "2023-02-01"},
		EntryPrice: map[string]float64{"0": 100},
		ExitPrice:  map[string]float64{"0": 110},
		Return:     map[string]float64{"0": 0.1},
		Duration:   map[string]float64{"0": 31},
	}

	trades, skipped, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected 0 skipped, got %d", skipped)
	}
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}

	want := domain.Trade{
		EntryDate:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		ExitDate:   time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		EntryPrice: 100,
		ExitPrice:  110,
		Return:     0.1,
		Duration:   31,
	}
	got := trades[0]
	if !got.EntryDate.Equal(want.EntryDate) || !got.ExitDate.Equal(want.ExitDate) {
		t.Errorf("dates: got %v/%v, want %v/%v", got.EntryDate, got.ExitDate, want.EntryDate, want.ExitDate)
	}
	if got.EntryPrice != want.EntryPrice || got.ExitPrice != want.ExitPrice ||
		got.Return != want.Return || got.Duration != want.Duration {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDecode_NumericIndexOrder(t *testing.T) {
	// "10" must sort after "2", not lexically before it.
	raw := completeLog("10", "2", "1")
	raw.EntryPrice["1"] = 1
	raw.EntryPrice["2"] = 2
	raw.EntryPrice["10"] = 10

	trades, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(trades))
	}

	for i, want := range []float64{1, 2, 10} {
		if trades[i].EntryPrice != want {
			t.Errorf("position %d: entry price %v, want %v", i, trades[i].EntryPrice, want)
		}
	}
}

func TestDecode_IncompleteRowExcludedAndCounted(t *testing.T) {
	raw := completeLog("0", "1", "2", "3", "4", "5")
	delete(raw.ExitPrice, "3") // row 3 present in only 5 of 6 maps

	trades, skipped, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(trades) != 5 {
		t.Errorf("expected 5 trades, got %d", len(trades))
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped row, got %d", skipped)
	}
}

func TestDecode_OrphanKeyCounted(t *testing.T) {
	// A key that exists only in one mapping is an incomplete row too.
	raw := completeLog("0")
	raw.Duration["7"] = 12

	trades, skipped, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(trades) != 1 {
		t.Errorf("expected 1 trade, got %d", len(trades))
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped row, got %d", skipped)
	}
}

func TestDecode_Empty(t *testing.T) {
	trades, skipped, err := Decode(RawTradeLog{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(trades) != 0 || skipped != 0 {
		t.Errorf("expected empty result, got %d trades, %d skipped", len(trades), skipped)
	}
}

func TestDecode_BadDateAborts(t *testing.T) {
	raw := completeLog("0", "1")
	raw.ExitDate["1"] = "not-a-date"

	_, _, err := Decode(raw)
	if !errors.Is(err, ErrMalformedTradeLog) {
		t.Fatalf("expected ErrMalformedTradeLog, got %v", err)
	}
}

func TestDecode_BadIndexAborts(t *testing.T) {
	raw := completeLog("0", "x")

	_, _, err := Decode(raw)
	if !errors.Is(err, ErrMalformedTradeLog) {
		t.Fatalf("expected ErrMalformedTradeLog, got %v", err)
	}
}

func TestDecode_BadDurationAborts(t *testing.T) {
	for _, dur := range []float64{-1, 1.5} {
		raw := completeLog("0")
		raw.Duration["0"] = dur

		_, _, err := Decode(raw)
		if !errors.Is(err, ErrMalformedTradeLog) {
			t.Errorf("duration %v: expected ErrMalformedTradeLog, got %v", dur, err)
		}
	}
}

func TestDecode_NonFiniteNumberAborts(t *testing.T) {
	raw := completeLog("0")
	raw.Return["0"] = math.NaN()

	_, _, err := Decode(raw)
	if !errors.Is(err, ErrMalformedTradeLog) {
		t.Fatalf("expected ErrMalformedTradeLog, got %v", err)
	}
}

func TestDecode_DateLayouts(t *testing.T) {
	raw := completeLog("0")
	raw.EntryDate["0"] = "2023-01-01 00:00:00" // pandas timestamp rendering
	raw.ExitDate["0"] = "2023-02-01T00:00:00Z" // RFC3339

	trades, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !trades[0].EntryDate.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("entry date: %v", trades[0].EntryDate)
	}
}
