package domain

import "time"

// Trade is one decoded row of the engine's trade log: a completed round trip
// from entry to exit. Rows keep the ascending order of their original
// trade-log index.
type Trade struct {
	EntryDate  time.Time `json:"entry_date"`
	ExitDate   time.Time `json:"exit_date"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	Return     float64   `json:"return"`   // signed fraction, 0.1 = +10%
	Duration   int       `json:"duration"` // holding period count, non-negative
}
