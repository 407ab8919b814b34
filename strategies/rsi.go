package strategies

import (
	"fmt"

	"github.com/MaiconJonatha/trading-bot/indicators"
	"github.com/MaiconJonatha/trading-bot/market"
)

// RSIStrategy signals on oversold/overbought readings of the RSI.
type RSIStrategy struct {
	period     int
	oversold   float64
	overbought float64
	name       string
}

func NewRSI(period int, oversold, overbought float64) (*RSIStrategy, error) {
	if period <= 0 {
		return nil, fmt.Errorf("rsi strategy: period must be positive, got %d", period)
	}
	if oversold >= overbought {
		return nil, fmt.Errorf("rsi strategy: oversold %v must be below overbought %v", oversold, overbought)
	}
	return &RSIStrategy{
		period:     period,
		oversold:   oversold,
		overbought: overbought,
		name:       fmt.Sprintf("RSI(%d,%v,%v)", period, oversold, overbought),
	}, nil
}

func (r *RSIStrategy) Name() string { return r.name }

func (r *RSIStrategy) Evaluate(s *market.Series) (Signal, error) {
	// RSI needs period deltas, hence period+1 bars.
	if s == nil || s.Len() < r.period+1 {
		return Hold, ErrInsufficientData
	}

	rsi, err := indicators.RSI(s.Bars, r.period)
	if err != nil {
		return Hold, err
	}

	switch cur := rsi[s.Len()-1]; {
	case cur < r.oversold:
		return Buy, nil
	case cur > r.overbought:
		return Sell, nil
	default:
		return Hold, nil
	}
}
