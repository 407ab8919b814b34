package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyDebitsCashAndOpensPosition(t *testing.T) {
	l := New(10_000, 0.02)

	trade, err := l.Buy("AAA", 10, 100)
	require.NoError(t, err)

	assert.Equal(t, TradeBuy, trade.Kind)
	assert.Equal(t, int64(10), trade.Quantity)
	assert.Equal(t, 1000.0, trade.Notional)
	assert.NotEmpty(t, trade.ID)

	assert.Equal(t, 9_000.0, l.Cash())

	pos, ok := l.Position("AAA")
	require.True(t, ok)
	assert.Equal(t, int64(10), pos.Quantity)
	assert.Equal(t, 100.0, pos.AvgCost)
	assert.False(t, pos.OpenedAt.IsZero())
}

func TestBuyBlendsAverageCost(t *testing.T) {
	l := New(10_000, 0.02)

	_, err := l.Buy("AAA", 10, 100)
	require.NoError(t, err)
	_, err = l.Buy("AAA", 10, 120)
	require.NoError(t, err)

	assert.Equal(t, 7_800.0, l.Cash())

	pos, ok := l.Position("AAA")
	require.True(t, ok)
	assert.Equal(t, int64(20), pos.Quantity)
	assert.InDelta(t, 110.0, pos.AvgCost, 1e-9)
}

func TestSellRealizesProfitAgainstAverageCost(t *testing.T) {
	l := New(10_000, 0.02)

	_, err := l.Buy("AAA", 10, 100)
	require.NoError(t, err)
	_, err = l.Buy("AAA", 10, 120)
	require.NoError(t, err)

	trade, err := l.Sell("AAA", 5, 130)
	require.NoError(t, err)

	assert.Equal(t, TradeSell, trade.Kind)
	assert.InDelta(t, 100.0, trade.Profit, 1e-9) // (130-110)*5
	assert.InDelta(t, 18.18, trade.ProfitPct, 0.01)
	assert.Equal(t, 8_450.0, l.Cash())

	// Partial sells never touch the blended average cost.
	pos, ok := l.Position("AAA")
	require.True(t, ok)
	assert.Equal(t, int64(15), pos.Quantity)
	assert.InDelta(t, 110.0, pos.AvgCost, 1e-9)
}

func TestSellFullPositionDeletesIt(t *testing.T) {
	l := New(10_000, 0.02)

	_, err := l.Buy("AAA", 10, 100)
	require.NoError(t, err)
	_, err = l.Sell("AAA", 10, 110)
	require.NoError(t, err)

	_, ok := l.Position("AAA")
	assert.False(t, ok)
	assert.Empty(t, l.Positions())

	// A re-bought ticker starts a fresh average cost.
	_, err = l.Buy("AAA", 5, 90)
	require.NoError(t, err)
	pos, ok := l.Position("AAA")
	require.True(t, ok)
	assert.Equal(t, 90.0, pos.AvgCost)
}

func TestBuyDeclinedOnInsufficientFunds(t *testing.T) {
	l := New(500, 0.02)

	_, err := l.Buy("AAA", 10, 100)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// A declined buy mutates nothing.
	assert.Equal(t, 500.0, l.Cash())
	assert.Empty(t, l.Positions())
	assert.Empty(t, l.History())
}

func TestSellDeclinedWithoutPosition(t *testing.T) {
	l := New(10_000, 0.02)

	_, err := l.Sell("BBB", 1, 50)
	assert.ErrorIs(t, err, ErrNoPosition)

	assert.Equal(t, 10_000.0, l.Cash())
	assert.Empty(t, l.History())
}

func TestSellDeclinedBeyondHoldings(t *testing.T) {
	l := New(10_000, 0.02)

	_, err := l.Buy("AAA", 10, 100)
	require.NoError(t, err)

	// Oversells are rejected, not clamped.
	_, err = l.Sell("AAA", 11, 100)
	assert.ErrorIs(t, err, ErrInsufficientHoldings)

	pos, ok := l.Position("AAA")
	require.True(t, ok)
	assert.Equal(t, int64(10), pos.Quantity)
	assert.Equal(t, 9_000.0, l.Cash())
	assert.Len(t, l.History(), 1)
}

func TestOrderValidation(t *testing.T) {
	l := New(10_000, 0.02)

	_, err := l.Buy("AAA", 0, 100)
	assert.Error(t, err)
	_, err = l.Buy("AAA", 10, 0)
	assert.Error(t, err)
	_, err = l.Buy("AAA", -1, 100)
	assert.Error(t, err)
	_, err = l.Buy("", 10, 100)
	assert.Error(t, err)
	_, err = l.Sell("AAA", 10, -5)
	assert.Error(t, err)

	assert.Equal(t, 10_000.0, l.Cash())
	assert.Empty(t, l.History())
}

// The accounting identity: cash always equals initial capital minus all
// buy notional plus all sell notional.
func TestCashFlowIdentity(t *testing.T) {
	l := New(10_000, 0.02)

	ops := []struct {
		kind  TradeKind
		qty   int64
		price float64
	}{
		{TradeBuy, 10, 100},
		{TradeBuy, 10, 120},
		{TradeSell, 5, 130},
		{TradeBuy, 3, 95},
		{TradeSell, 18, 105},
	}
	for _, op := range ops {
		var err error
		if op.kind == TradeBuy {
			_, err = l.Buy("AAA", op.qty, op.price)
		} else {
			_, err = l.Sell("AAA", op.qty, op.price)
		}
		require.NoError(t, err)
		assert.GreaterOrEqual(t, l.Cash(), 0.0)
	}

	var bought, sold float64
	for _, tr := range l.History() {
		switch tr.Kind {
		case TradeBuy:
			bought += tr.Notional
		case TradeSell:
			sold += tr.Notional
		}
	}
	assert.InDelta(t, l.InitialCapital()-bought+sold, l.Cash(), 1e-9)
}

func TestHistoryIsAppendOnlyCopy(t *testing.T) {
	l := New(10_000, 0.02)

	_, err := l.Buy("AAA", 10, 100)
	require.NoError(t, err)
	_, err = l.Sell("AAA", 10, 110)
	require.NoError(t, err)

	hist := l.History()
	require.Len(t, hist, 2)
	assert.Equal(t, TradeBuy, hist[0].Kind)
	assert.Equal(t, TradeSell, hist[1].Kind)
	assert.False(t, hist[1].Time.Before(hist[0].Time))

	// Mutating the returned slice must not touch the ledger.
	hist[0].Quantity = 999
	assert.Equal(t, int64(10), l.History()[0].Quantity)
}

func TestPositionsSortedByTicker(t *testing.T) {
	l := New(10_000, 0.02)

	_, err := l.Buy("ZZZ", 1, 10)
	require.NoError(t, err)
	_, err = l.Buy("AAA", 1, 10)
	require.NoError(t, err)
	_, err = l.Buy("MMM", 1, 10)
	require.NoError(t, err)

	var tickers []string
	for _, p := range l.Positions() {
		tickers = append(tickers, p.Ticker)
	}
	assert.Equal(t, []string{"AAA", "MMM", "ZZZ"}, tickers)
}

func TestRiskPerTradeIsCarriedNotApplied(t *testing.T) {
	l := New(10_000, 0.05)
	assert.Equal(t, 0.05, l.RiskPerTrade())

	// Sizing is the caller's concern: a buy for any affordable quantity
	// succeeds regardless of the risk setting.
	_, err := l.Buy("AAA", 99, 100)
	assert.NoError(t, err)
}
