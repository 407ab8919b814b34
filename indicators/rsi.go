package indicators

import (
	"fmt"
	"math"

	"github.com/MaiconJonatha/trading-bot/market"
)

// RSI computes the Relative Strength Index of closing prices.
//
// The result is aligned to the input: out[i] covers the trailing
// `period` close-to-close deltas ending at bar i, so out[i] is NaN
// until at least period+1 bars exist. Values are always in [0, 100].
//
// A window with zero average loss saturates to exactly 100 rather than
// dividing by zero; an all-loss window yields 0.
func RSI(bars []market.Bar, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("rsi: period must be positive, got %d", period)
	}

	out := make([]float64, len(bars))
	var gainSum, lossSum float64

	for i := range bars {
		if i == 0 {
			out[0] = math.NaN()
			continue
		}

		delta := bars[i].Close - bars[i-1].Close
		gainSum += math.Max(delta, 0)
		lossSum += math.Max(-delta, 0)

		// Slide the delta window: the delta at bar i-period falls out.
		// Clamp at zero to keep float residue from leaking a negative sum.
		if i > period {
			old := bars[i-period].Close - bars[i-period-1].Close
			gainSum = math.Max(gainSum-math.Max(old, 0), 0)
			lossSum = math.Max(lossSum-math.Max(-old, 0), 0)
		}

		if i < period {
			out[i] = math.NaN()
			continue
		}

		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)

		if avgLoss == 0 {
			// All-gains (or flat) window: maximal strength.
			out[i] = 100
			continue
		}

		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out, nil
}
