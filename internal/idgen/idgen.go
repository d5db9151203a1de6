// Package idgen produces identifiers for strategy configurations. Identifiers
// are opaque to the engine; they only need to be unique within one request
// and stable for the lifetime of a configuration.
package idgen

import (
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"

	"backtest-gateway/internal/schema"
)

// entropyBytes gives ~2^64 ids, plenty for a working set of a few entries.
const entropyBytes = 8

// New returns a fresh identifier prefixed with the variant kind, e.g.
// "rsi_extremes-4jjVSZtTpnLM".
func New(kind schema.Kind) string {
	buf := make([]byte, entropyBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return fmt.Sprintf("%s-%s", kind, base58.Encode(buf))
}
