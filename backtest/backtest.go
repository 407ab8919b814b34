// Package backtest replays historical bars through a strategy and a
// fresh ledger, using the same execution rules as the live loop: a
// fixed quantity per BUY signal, full liquidation per SELL.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MaiconJonatha/trading-bot/bot"
	"github.com/MaiconJonatha/trading-bot/journal"
	"github.com/MaiconJonatha/trading-bot/ledger"
	"github.com/MaiconJonatha/trading-bot/market"
	"github.com/MaiconJonatha/trading-bot/strategies"
)

// Options controls runner behavior beyond the defaults.
type Options struct {
	// OrderQty is the quantity bought per BUY signal. Zero means the
	// live loop's default.
	OrderQty int64
	// CloseAtEnd liquidates any open position at the final bar's close,
	// so Result.Return reflects realized money only.
	CloseAtEnd bool
}

// Result summarizes one backtest run.
type Result struct {
	Strategy string
	Ticker   string
	Start    time.Time
	End      time.Time
	Bars     int

	Trades []ledger.Trade
	Wins   int
	Losses int

	// Final marks open positions to the last bar's close.
	Final ledger.Valuation
	// Return is equity over initial capital, in percent.
	Return float64
}

// Runner replays a series bar by bar. Each bar the strategy sees the
// series up to and including that bar, and orders fill at its close.
type Runner struct {
	Strategy strategies.Strategy
	Ledger   *ledger.Ledger
	Journal  journal.Journal
	Log      zerolog.Logger
	Options  Options
}

func (r *Runner) Run(ctx context.Context, series *market.Series) (*Result, error) {
	if r.Strategy == nil {
		return nil, errors.New("backtest: strategy is required")
	}
	if r.Ledger == nil {
		return nil, errors.New("backtest: ledger is required")
	}
	if series == nil || series.Len() == 0 {
		return nil, errors.New("backtest: series is empty")
	}

	qty := r.Options.OrderQty
	if qty <= 0 {
		qty = bot.DefaultOrderQty
	}

	// Trades are stamped with the bar under replay, not wall time.
	var barTime time.Time
	r.Ledger.SetClock(func() time.Time { return barTime })

	for i := range series.Bars {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bar := series.Bars[i]
		barTime = bar.Time

		prefix := &market.Series{Ticker: series.Ticker, Bars: series.Bars[:i+1]}
		signal, err := r.Strategy.Evaluate(prefix)
		if err != nil {
			if errors.Is(err, strategies.ErrInsufficientData) {
				continue
			}
			return nil, fmt.Errorf("backtest: bar %d: %w", i, err)
		}

		switch signal {
		case strategies.Buy:
			r.buy(series.Ticker, qty, bar.Close)
		case strategies.Sell:
			r.sell(series.Ticker, bar.Close)
		}
	}

	last := series.Bars[series.Len()-1]
	barTime = last.Time

	if r.Options.CloseAtEnd {
		r.sell(series.Ticker, last.Close)
	}

	return r.summarize(series, last), nil
}

func (r *Runner) buy(ticker string, qty int64, price float64) {
	trade, err := r.Ledger.Buy(ticker, qty, price)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			r.Log.Debug().Str("ticker", ticker).Float64("price", price).
				Msg("buy declined: insufficient funds")
			return
		}
		r.Log.Error().Str("ticker", ticker).Err(err).Msg("buy failed")
		return
	}
	r.journalTrade(trade)
}

func (r *Runner) sell(ticker string, price float64) {
	pos, ok := r.Ledger.Position(ticker)
	if !ok {
		return
	}
	trade, err := r.Ledger.Sell(ticker, pos.Quantity, price)
	if err != nil {
		r.Log.Error().Str("ticker", ticker).Err(err).Msg("sell failed")
		return
	}
	r.journalTrade(trade)
}

func (r *Runner) journalTrade(t ledger.Trade) {
	if r.Journal == nil {
		return
	}
	if err := r.Journal.RecordTrade(t); err != nil {
		r.Log.Error().Err(err).Str("trade", t.ID).Msg("journal trade failed")
	}
}

func (r *Runner) summarize(series *market.Series, last market.Bar) *Result {
	res := &Result{
		Strategy: r.Strategy.Name(),
		Ticker:   series.Ticker,
		Start:    series.Bars[0].Time,
		End:      last.Time,
		Bars:     series.Len(),
		Trades:   r.Ledger.History(),
		Final:    r.Ledger.Valuation(map[string]float64{series.Ticker: last.Close}),
	}

	for _, t := range res.Trades {
		if t.Kind != ledger.TradeSell {
			continue
		}
		switch {
		case t.Profit > 0:
			res.Wins++
		case t.Profit < 0:
			res.Losses++
		}
	}

	initial := r.Ledger.InitialCapital()
	if initial > 0 {
		res.Return = (res.Final.Equity/initial - 1) * 100
	}
	return res
}
