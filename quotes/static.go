package quotes

import (
	"context"
	"fmt"
	"sync"

	"github.com/MaiconJonatha/trading-bot/market"
)

// Static is an in-memory Source for tests and scripted replays.
// Prices and series are set explicitly per ticker.
type Static struct {
	mu     sync.RWMutex
	prices map[string]float64
	series map[string]*market.Series
}

func NewStatic() *Static {
	return &Static{
		prices: make(map[string]float64),
		series: make(map[string]*market.Series),
	}
}

func (s *Static) SetPrice(ticker string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[ticker] = price
}

func (s *Static) SetSeries(ticker string, series *market.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[ticker] = series
}

func (s *Static) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prices[ticker]
	if !ok {
		return 0, fmt.Errorf("%w: no price for %s", ErrUnavailable, ticker)
	}
	return p, nil
}

func (s *Static) History(ctx context.Context, ticker string, bars int) (*market.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	series, ok := s.series[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: no history for %s", ErrUnavailable, ticker)
	}
	if bars > 0 && len(series.Bars) > bars {
		trimmed := &market.Series{Ticker: series.Ticker, Bars: series.Bars[len(series.Bars)-bars:]}
		return trimmed, nil
	}
	return series, nil
}
