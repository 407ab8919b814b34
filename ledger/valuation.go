package ledger

import "time"

// Holding is the mark-to-market view of one open position.
type Holding struct {
	Ticker        string
	Quantity      int64
	AvgCost       float64
	Price         float64
	Invested      float64
	MarketValue   float64
	Unrealized    float64
	UnrealizedPct float64
}

// Valuation is a point-in-time report over the whole account.
type Valuation struct {
	Time           time.Time
	Cash           float64
	PositionsValue float64
	Unrealized     float64
	Equity         float64
	Holdings       []Holding
}

// Valuation marks every open position to the supplied prices. It is a
// pure read: the ledger is not mutated. Positions whose ticker has no
// entry in prices are skipped rather than failing the whole report.
func (l *Ledger) Valuation(prices map[string]float64) Valuation {
	v := Valuation{Time: l.now()}

	for _, pos := range l.Positions() {
		price, ok := prices[pos.Ticker]
		if !ok || price <= 0 {
			continue
		}

		invested := float64(pos.Quantity) * pos.AvgCost
		value := float64(pos.Quantity) * price
		unrealized := value - invested

		v.Holdings = append(v.Holdings, Holding{
			Ticker:        pos.Ticker,
			Quantity:      pos.Quantity,
			AvgCost:       pos.AvgCost,
			Price:         price,
			Invested:      invested,
			MarketValue:   value,
			Unrealized:    unrealized,
			UnrealizedPct: unrealized / invested * 100,
		})
		v.PositionsValue += value
		v.Unrealized += unrealized
	}

	v.Cash = l.Cash()
	v.Equity = v.Cash + v.PositionsValue
	return v
}
