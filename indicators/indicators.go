// Package indicators provides technical analysis indicators computed
// over market bars.
package indicators

import "github.com/MaiconJonatha/trading-bot/market"

// Indicator computes a single streaming value from bars.
// It is deterministic and safe to use in live runs and tests alike.
type Indicator interface {
	// Name returns a stable identifier like "SMA(20)" or "RSI(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* bar and updates internal state.
	Update(b market.Bar)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value. Callers should always
	// check Ready() first; before that the value is 0.
	Value() float64
}
