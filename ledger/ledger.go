// Package ledger is the authoritative record of a simulated trading
// account: cash, open positions, and the append-only trade history.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MaiconJonatha/trading-bot/internal/id"
)

// Business-rule declines. These are expected outcomes of Buy/Sell, not
// faults: callers check them with errors.Is and carry on.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrNoPosition           = errors.New("no open position")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
)

// Ledger tracks cash, positions, and history for one account. All
// mutations go through Buy and Sell behind a single mutex, so Position
// updates stay consistent even if tickers are polled concurrently.
type Ledger struct {
	mu             sync.Mutex
	cash           float64
	initialCapital float64
	riskPerTrade   float64
	positions      map[string]*Position
	history        []Trade

	now func() time.Time // overridable for tests
}

// New creates a ledger with the given starting capital.
//
// riskPerTrade is accepted and carried but not used to size orders;
// the runner buys a fixed quantity per signal.
func New(initialCapital, riskPerTrade float64) *Ledger {
	return &Ledger{
		cash:           initialCapital,
		initialCapital: initialCapital,
		riskPerTrade:   riskPerTrade,
		positions:      make(map[string]*Position),
		now:            time.Now,
	}
}

// Buy executes a buy order. It declines with ErrInsufficientFunds when
// the notional exceeds available cash; a declined buy mutates nothing.
func (l *Ledger) Buy(ticker string, quantity int64, price float64) (Trade, error) {
	if err := validateOrder(ticker, quantity, price); err != nil {
		return Trade{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cost := float64(quantity) * price
	if cost > l.cash {
		return Trade{}, fmt.Errorf("buy %d %s at %.2f costs %.2f with %.2f available: %w",
			quantity, ticker, price, cost, l.cash, ErrInsufficientFunds)
	}

	now := l.now()
	l.cash -= cost

	if pos, ok := l.positions[ticker]; ok {
		oldQty := pos.Quantity
		pos.Quantity += quantity
		pos.AvgCost = (pos.AvgCost*float64(oldQty) + price*float64(quantity)) / float64(pos.Quantity)
	} else {
		l.positions[ticker] = &Position{
			Ticker:   ticker,
			Quantity: quantity,
			AvgCost:  price,
			OpenedAt: now,
		}
	}

	trade := Trade{
		ID:       id.New(),
		Kind:     TradeBuy,
		Ticker:   ticker,
		Quantity: quantity,
		Price:    price,
		Notional: cost,
		Time:     now,
	}
	l.history = append(l.history, trade)
	return trade, nil
}

// Sell executes a sell order against the open position. It declines
// with ErrNoPosition when the ticker is not held and with
// ErrInsufficientHoldings when quantity exceeds the position; partial
// sells beyond holdings are rejected, not clamped. A declined sell
// mutates nothing. Selling the full position deletes it; its average
// cost is discarded with it.
func (l *Ledger) Sell(ticker string, quantity int64, price float64) (Trade, error) {
	if err := validateOrder(ticker, quantity, price); err != nil {
		return Trade{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	pos, ok := l.positions[ticker]
	if !ok {
		return Trade{}, fmt.Errorf("sell %s: %w", ticker, ErrNoPosition)
	}
	if pos.Quantity < quantity {
		return Trade{}, fmt.Errorf("sell %d %s with only %d held: %w",
			quantity, ticker, pos.Quantity, ErrInsufficientHoldings)
	}

	proceeds := float64(quantity) * price
	l.cash += proceeds

	profit := (price - pos.AvgCost) * float64(quantity)
	profitPct := (price/pos.AvgCost - 1) * 100

	pos.Quantity -= quantity
	if pos.Quantity == 0 {
		delete(l.positions, ticker)
	}

	trade := Trade{
		ID:        id.New(),
		Kind:      TradeSell,
		Ticker:    ticker,
		Quantity:  quantity,
		Price:     price,
		Notional:  proceeds,
		Time:      l.now(),
		Profit:    profit,
		ProfitPct: profitPct,
	}
	l.history = append(l.history, trade)
	return trade, nil
}

func validateOrder(ticker string, quantity int64, price float64) error {
	if ticker == "" {
		return errors.New("ticker is required")
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if price <= 0 {
		return fmt.Errorf("price must be positive, got %v", price)
	}
	return nil
}

// SetClock overrides the ledger's time source. Backtests use it to
// stamp trades with bar time instead of wall time.
func (l *Ledger) SetClock(clock func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if clock != nil {
		l.now = clock
	}
}

// Cash returns the available cash balance.
func (l *Ledger) Cash() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

// InitialCapital returns the capital the ledger was created with.
func (l *Ledger) InitialCapital() float64 {
	return l.initialCapital
}

// RiskPerTrade returns the configured risk fraction per trade.
func (l *Ledger) RiskPerTrade() float64 {
	return l.riskPerTrade
}

// Position returns a copy of the open position for ticker, if any.
func (l *Ledger) Position(ticker string) (Position, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pos, ok := l.positions[ticker]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// Positions returns copies of all open positions sorted by ticker.
// Insertion order carries no meaning; sorting keeps reports stable.
func (l *Ledger) Positions() []Position {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Position, 0, len(l.positions))
	for _, pos := range l.positions {
		out = append(out, *pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

// History returns a copy of the trade history in execution order.
func (l *Ledger) History() []Trade {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Trade, len(l.history))
	copy(out, l.history)
	return out
}
