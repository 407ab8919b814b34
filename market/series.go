package market

import (
	"fmt"
	"time"
)

// Series is an ordered price history for one ticker: bars ascending by
// timestamp with no duplicates. Consumers treat a Series as read-only;
// only its producer appends to it.
type Series struct {
	Ticker string
	Bars   []Bar
}

// NewSeries builds a Series after validating bar ordering.
func NewSeries(ticker string, bars []Bar) (*Series, error) {
	s := &Series{Ticker: ticker}
	for _, b := range bars {
		if err := s.Append(b); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append adds a bar to the end of the series. The bar must be strictly
// newer than the last one.
func (s *Series) Append(b Bar) error {
	if n := len(s.Bars); n > 0 {
		last := s.Bars[n-1].Time
		if !b.Time.After(last) {
			return fmt.Errorf("series %s: bar at %s is not after %s",
				s.Ticker, b.Time.Format(time.RFC3339), last.Format(time.RFC3339))
		}
	}
	s.Bars = append(s.Bars, b)
	return nil
}

func (s *Series) Len() int {
	return len(s.Bars)
}

// Last returns the most recent bar, or false when the series is empty.
func (s *Series) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Closes returns the closing prices in bar order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
