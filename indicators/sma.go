package indicators

import (
	"fmt"
	"math"

	"github.com/MaiconJonatha/trading-bot/market"
)

// SMA computes the Simple Moving Average of closing prices.
//
// The result is aligned to the input: out[i] is the mean of the
// trailing `period` closes ending at bar i. Positions with fewer than
// `period` bars of history are NaN, not zero.
func SMA(bars []market.Bar, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("sma: period must be positive, got %d", period)
	}

	out := make([]float64, len(bars))
	sum := 0.0
	for i, b := range bars {
		sum += b.Close
		if i >= period {
			sum -= bars[i-period].Close
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}
