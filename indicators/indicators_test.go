package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MaiconJonatha/trading-bot/market"
)

func barsFromCloses(closes ...float64) []market.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{Time: start.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func TestSMAAlignment(t *testing.T) {
	bars := barsFromCloses(10, 20, 30, 40, 50)

	out, err := SMA(bars, 3)
	assert.NoError(t, err)
	assert.Len(t, out, 5)

	// First period-1 entries are undefined, not zero.
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))

	assert.InDelta(t, 20.0, out[2], 1e-9) // (10+20+30)/3
	assert.InDelta(t, 30.0, out[3], 1e-9)
	assert.InDelta(t, 40.0, out[4], 1e-9)
}

func TestSMARejectsBadPeriod(t *testing.T) {
	_, err := SMA(barsFromCloses(1, 2, 3), 0)
	assert.Error(t, err)
}

func TestRSIUndefinedUntilPeriodPlusOneBars(t *testing.T) {
	bars := barsFromCloses(10, 11, 12, 13, 14)

	out, err := RSI(bars, 3)
	assert.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(out[i]), "index %d should be undefined", i)
	}
	assert.False(t, math.IsNaN(out[3]))
}

func TestRSIAllGainsSaturatesAt100(t *testing.T) {
	bars := barsFromCloses(10, 11, 12, 13, 14, 15)

	out, err := RSI(bars, 3)
	assert.NoError(t, err)
	// Zero average loss means RS is undefined; the contract is exact saturation.
	assert.Equal(t, 100.0, out[len(out)-1])
}

func TestRSIAllLossesIsZero(t *testing.T) {
	bars := barsFromCloses(15, 14, 13, 12, 11, 10)

	out, err := RSI(bars, 3)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, out[len(out)-1], 1e-9)
}

func TestRSIMixedWindowInRange(t *testing.T) {
	bars := barsFromCloses(10, 12, 11, 13, 12, 14, 13, 15)

	out, err := RSI(bars, 4)
	assert.NoError(t, err)

	for i := 4; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i], 0.0)
		assert.LessOrEqual(t, out[i], 100.0)
	}
}

func TestRSIKnownValue(t *testing.T) {
	// Deltas: +2, -1, +2, -1. avgGain = 4/4 = 1, avgLoss = 2/4 = 0.5,
	// RS = 2, RSI = 100 - 100/3.
	bars := barsFromCloses(10, 12, 11, 13, 12)

	out, err := RSI(bars, 4)
	assert.NoError(t, err)
	assert.InDelta(t, 100-100.0/3, out[4], 1e-9)
}
