package market

import "time"

// Bar represents one OHLC (Open, High, Low, Close) bar with volume
// for a single ticker. Bars are immutable once produced by a data source.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
