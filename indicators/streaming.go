package indicators

import (
	"fmt"
	"math"

	"github.com/MaiconJonatha/trading-bot/market"
)

// SimpleMA is a streaming Simple Moving Average indicator.
type SimpleMA struct {
	period int
	closes []float64
}

// NewSMA creates a streaming SMA with the given period.
func NewSMA(period int) *SimpleMA {
	return &SimpleMA{
		period: period,
		closes: make([]float64, 0, period),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.closes = m.closes[:0]
}

func (m *SimpleMA) Update(b market.Bar) {
	m.closes = append(m.closes, b.Close)
	if len(m.closes) > m.period {
		m.closes = m.closes[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.closes) >= m.period
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	sum := 0.0
	for _, c := range m.closes {
		sum += c
	}
	return sum / float64(len(m.closes))
}

// RelativeStrength is a streaming RSI indicator. It keeps the trailing
// window of close-to-close deltas and recomputes the simple averages
// on demand, so Reset/replay always match the batch RSI function.
type RelativeStrength struct {
	period    int
	lastClose float64
	haveLast  bool
	deltas    []float64
}

// NewRSI creates a streaming RSI with the given period.
func NewRSI(period int) *RelativeStrength {
	return &RelativeStrength{
		period: period,
		deltas: make([]float64, 0, period),
	}
}

func (r *RelativeStrength) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

// Warmup is period+1 bars: the first bar only seeds the delta chain.
func (r *RelativeStrength) Warmup() int {
	return r.period + 1
}

func (r *RelativeStrength) Reset() {
	r.deltas = r.deltas[:0]
	r.lastClose = 0
	r.haveLast = false
}

func (r *RelativeStrength) Update(b market.Bar) {
	if !r.haveLast {
		r.lastClose = b.Close
		r.haveLast = true
		return
	}
	r.deltas = append(r.deltas, b.Close-r.lastClose)
	r.lastClose = b.Close
	if len(r.deltas) > r.period {
		r.deltas = r.deltas[1:]
	}
}

func (r *RelativeStrength) Ready() bool {
	return len(r.deltas) >= r.period
}

func (r *RelativeStrength) Value() float64 {
	if !r.Ready() {
		return 0
	}

	var gain, loss float64
	for _, d := range r.deltas {
		gain += math.Max(d, 0)
		loss += math.Max(-d, 0)
	}
	if loss == 0 {
		return 100
	}
	rs := gain / loss
	return 100 - 100/(1+rs)
}
