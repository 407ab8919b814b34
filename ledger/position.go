package ledger

import "time"

// Position is an open holding in one ticker. Quantity is always
// positive: a position that reaches zero is deleted, never retained.
// AvgCost is the volume-weighted entry price across accumulating buys;
// sells never change it.
type Position struct {
	Ticker   string
	Quantity int64
	AvgCost  float64
	OpenedAt time.Time
}
