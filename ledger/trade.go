package ledger

import (
	"fmt"
	"time"
)

// TradeKind distinguishes executed buys from sells.
type TradeKind int

const (
	TradeBuy TradeKind = iota
	TradeSell
)

func (k TradeKind) String() string {
	switch k {
	case TradeBuy:
		return "BUY"
	case TradeSell:
		return "SELL"
	default:
		return fmt.Sprintf("TradeKind(%d)", int(k))
	}
}

// ParseTradeKind maps a stored kind name back onto a TradeKind.
func ParseTradeKind(s string) (TradeKind, error) {
	switch s {
	case "BUY":
		return TradeBuy, nil
	case "SELL":
		return TradeSell, nil
	default:
		return 0, fmt.Errorf("unknown trade kind %q", s)
	}
}

// Trade is an immutable record of one executed order, appended to the
// ledger history. Profit and ProfitPct are set on sells only, measured
// against the position's average cost at the time of sale.
type Trade struct {
	ID       string
	Kind     TradeKind
	Ticker   string
	Quantity int64
	Price    float64
	Notional float64
	Time     time.Time

	Profit    float64
	ProfitPct float64
}
