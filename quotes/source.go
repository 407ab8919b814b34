// Package quotes supplies current prices and bar history from an
// external provider. Provider failures are treated as transient: the
// caller skips the ticker for the cycle and tries again later.
package quotes

import (
	"context"
	"errors"

	"github.com/MaiconJonatha/trading-bot/market"
)

// ErrUnavailable wraps any transient provider failure (network error,
// bad payload, unknown ticker). It is a skip-this-cycle condition,
// never fatal.
var ErrUnavailable = errors.New("quote unavailable")

type Source interface {
	// CurrentPrice returns the latest traded price for ticker.
	CurrentPrice(ctx context.Context, ticker string) (float64, error)

	// History returns up to the last `bars` daily bars for ticker,
	// ascending by time.
	History(ctx context.Context, ticker string, bars int) (*market.Series, error)
}
