package strategies

import (
	"fmt"

	"github.com/MaiconJonatha/trading-bot/indicators"
	"github.com/MaiconJonatha/trading-bot/market"
)

// Crossover signals on the cross of a short SMA over a long SMA.
// It compares the two most recent aligned values, so a signal fires
// only on the cross event itself, not on every bar while the averages
// stay crossed.
type Crossover struct {
	short int
	long  int
	name  string
}

func NewCrossover(short, long int) (*Crossover, error) {
	if short <= 0 || long <= 0 {
		return nil, fmt.Errorf("crossover: periods must be positive (short=%d long=%d)", short, long)
	}
	if short >= long {
		return nil, fmt.Errorf("crossover: short period %d must be below long period %d", short, long)
	}
	return &Crossover{
		short: short,
		long:  long,
		name:  fmt.Sprintf("SMA_CROSS(%d,%d)", short, long),
	}, nil
}

func (c *Crossover) Name() string { return c.name }

func (c *Crossover) Evaluate(s *market.Series) (Signal, error) {
	// Need the long SMA on the current and the prior bar.
	if s == nil || s.Len() < c.long+1 {
		return Hold, ErrInsufficientData
	}

	short, err := indicators.SMA(s.Bars, c.short)
	if err != nil {
		return Hold, err
	}
	long, err := indicators.SMA(s.Bars, c.long)
	if err != nil {
		return Hold, err
	}

	cur := s.Len() - 1
	prev := cur - 1

	switch {
	case short[cur] > long[cur] && short[prev] <= long[prev]:
		return Buy, nil
	case short[cur] < long[cur] && short[prev] >= long[prev]:
		return Sell, nil
	default:
		return Hold, nil
	}
}
