// Package session holds the caller's working set of strategy configurations:
// the one piece of shared mutable state outside the pure transformation core.
// Mutations are serialized behind a mutex (single writer) so the
// identifier-uniqueness invariant holds.
package session

import (
	"errors"
	"fmt"
	"sync"

	"backtest-gateway/internal/strategy"
)

var (
	// ErrNotFound is returned when no configuration carries the identifier.
	ErrNotFound = errors.New("strategy not found")

	// ErrDuplicateIdentifier is returned when adding a configuration whose
	// identifier is already present in the working set.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// WorkingSet is an ordered, identifier-unique collection of strategy
// configurations. Safe for concurrent use.
type WorkingSet struct {
	mu      sync.RWMutex
	configs []strategy.Config
}

// NewWorkingSet creates an empty working set.
func NewWorkingSet() *WorkingSet {
	return &WorkingSet{}
}

// Add appends cfg, rejecting a duplicate identifier.
func (w *WorkingSet) Add(cfg strategy.Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, c := range w.configs {
		if c.Identifier() == cfg.Identifier() {
			return fmt.Errorf("%w: %q", ErrDuplicateIdentifier, cfg.Identifier())
		}
	}
	w.configs = append(w.configs, cfg)
	return nil
}

// Remove deletes the configuration with the identifier, preserving the order
// of the remainder.
func (w *WorkingSet) Remove(identifier string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, c := range w.configs {
		if c.Identifier() == identifier {
			w.configs = append(w.configs[:i], w.configs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, identifier)
}

// Get returns the configuration with the identifier.
func (w *WorkingSet) Get(identifier string) (strategy.Config, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, c := range w.configs {
		if c.Identifier() == identifier {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, identifier)
}

// SetField replaces one field of the identified configuration via
// strategy.SetField. A rejected edit leaves the stored value untouched.
func (w *WorkingSet) SetField(identifier, field, raw string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, c := range w.configs {
		if c.Identifier() != identifier {
			continue
		}
		updated, err := strategy.SetField(c, field, raw)
		if err != nil {
			return err
		}
		w.configs[i] = updated
		return nil
	}
	return fmt.Errorf("%w: %q", ErrNotFound, identifier)
}

// Configs returns a snapshot of the working set in insertion order.
func (w *WorkingSet) Configs() []strategy.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]strategy.Config, len(w.configs))
	copy(out, w.configs)
	return out
}

// Len returns the number of configurations held.
func (w *WorkingSet) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.configs)
}
