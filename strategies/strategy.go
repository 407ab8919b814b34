// Package strategies contains the trade signal generators. Strategies
// are stateless: repeated calls with the same series are deterministic.
package strategies

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MaiconJonatha/trading-bot/market"
)

// ErrInsufficientData signals that a series is too short for the
// strategy's indicator windows. Callers treat it as "no signal this
// cycle", never as a fault.
var ErrInsufficientData = errors.New("insufficient data for signal")

type Signal int

const (
	Hold Signal = iota
	Buy
	Sell
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Strategy evaluates a price series into a trade signal.
type Strategy interface {
	Name() string
	Evaluate(s *market.Series) (Signal, error)
}

// Kind is the closed set of supported strategies. Dispatching on Kind
// rather than free-form strings makes an unsupported strategy an
// explicit, checkable case.
type Kind int

const (
	KindCrossover Kind = iota
	KindRSI
)

func (k Kind) String() string {
	switch k {
	case KindCrossover:
		return "crossover"
	case KindRSI:
		return "rsi"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a config/CLI name onto a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "crossover", "sma-cross", "smacross":
		return KindCrossover, nil
	case "rsi":
		return KindRSI, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (supported: crossover, rsi)", name)
	}
}

// Config carries the parameters for every strategy kind; each kind
// reads only its own fields.
type Config struct {
	ShortPeriod int
	LongPeriod  int

	RSIPeriod  int
	Oversold   float64
	Overbought float64
}

// New builds a strategy of the given kind from cfg.
func New(k Kind, cfg Config) (Strategy, error) {
	switch k {
	case KindCrossover:
		return NewCrossover(cfg.ShortPeriod, cfg.LongPeriod)
	case KindRSI:
		return NewRSI(cfg.RSIPeriod, cfg.Oversold, cfg.Overbought)
	default:
		return nil, fmt.Errorf("unknown strategy kind %v", k)
	}
}
