// Package bot drives the polling loop: pull prices, evaluate the
// strategy, and apply the resulting orders to the ledger.
package bot

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/MaiconJonatha/trading-bot/journal"
	"github.com/MaiconJonatha/trading-bot/ledger"
	"github.com/MaiconJonatha/trading-bot/quotes"
	"github.com/MaiconJonatha/trading-bot/strategies"
)

// DefaultOrderQty is the fixed quantity bought per BUY signal. Sizing
// is not derived from the account's risk-per-trade setting.
const DefaultOrderQty = 10

// Bot polls a list of tickers on a fixed interval and executes the
// strategy's signals against the ledger. It is single-threaded: one
// pass runs to completion before the next sleep.
type Bot struct {
	Ledger   *ledger.Ledger
	Source   quotes.Source
	Strategy strategies.Strategy
	Journal  journal.Journal
	Log      zerolog.Logger
	Out      io.Writer

	Tickers     []string
	Interval    time.Duration
	OrderQty    int64
	HistoryBars int

	mu         sync.Mutex
	lastPrices map[string]float64
}

// RunOnce performs a single pass over the ticker list. Unavailable
// quotes, short histories, and declined orders all skip the ticker and
// keep the pass going; only programming errors propagate.
func (b *Bot) RunOnce(ctx context.Context) error {
	for _, ticker := range b.Tickers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.step(ctx, ticker); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) step(ctx context.Context, ticker string) error {
	series, err := b.Source.History(ctx, ticker, b.HistoryBars)
	if err != nil {
		if errors.Is(err, quotes.ErrUnavailable) {
			b.Log.Debug().Str("ticker", ticker).Err(err).Msg("history unavailable, skipping")
			return nil
		}
		return err
	}

	signal, err := b.Strategy.Evaluate(series)
	if err != nil {
		if errors.Is(err, strategies.ErrInsufficientData) {
			b.Log.Debug().Str("ticker", ticker).Msg("not enough bars for a signal")
			return nil
		}
		return err
	}

	price, err := b.Source.CurrentPrice(ctx, ticker)
	if err != nil {
		if errors.Is(err, quotes.ErrUnavailable) {
			b.Log.Debug().Str("ticker", ticker).Err(err).Msg("price unavailable, skipping")
			return nil
		}
		return err
	}
	b.rememberPrice(ticker, price)

	switch signal {
	case strategies.Buy:
		b.executeBuy(ticker, price)
	case strategies.Sell:
		b.executeSell(ticker, price)
	default:
		b.Log.Debug().Str("ticker", ticker).Float64("price", price).Msg("HOLD")
	}
	return nil
}

func (b *Bot) executeBuy(ticker string, price float64) {
	qty := b.OrderQty
	if qty <= 0 {
		qty = DefaultOrderQty
	}

	trade, err := b.Ledger.Buy(ticker, qty, price)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			b.Log.Warn().Str("ticker", ticker).Int64("qty", qty).
				Float64("price", price).Msg("buy declined: insufficient funds")
			return
		}
		b.Log.Error().Str("ticker", ticker).Err(err).Msg("buy failed")
		return
	}

	b.Log.Info().Str("ticker", ticker).Int64("qty", trade.Quantity).
		Float64("price", trade.Price).Float64("notional", trade.Notional).
		Float64("cash", b.Ledger.Cash()).Msg("BUY")
	b.journalTrade(trade)
}

// executeSell liquidates the entire open position, if any.
func (b *Bot) executeSell(ticker string, price float64) {
	pos, ok := b.Ledger.Position(ticker)
	if !ok {
		b.Log.Debug().Str("ticker", ticker).Msg("sell signal with no position")
		return
	}

	trade, err := b.Ledger.Sell(ticker, pos.Quantity, price)
	if err != nil {
		b.Log.Error().Str("ticker", ticker).Err(err).Msg("sell failed")
		return
	}

	b.Log.Info().Str("ticker", ticker).Int64("qty", trade.Quantity).
		Float64("price", trade.Price).Float64("profit", trade.Profit).
		Float64("profit_pct", trade.ProfitPct).Msg("SELL")
	b.journalTrade(trade)
}

func (b *Bot) journalTrade(t ledger.Trade) {
	if b.Journal == nil {
		return
	}
	if err := b.Journal.RecordTrade(t); err != nil {
		b.Log.Error().Err(err).Str("trade", t.ID).Msg("journal trade failed")
	}
}

func (b *Bot) rememberPrice(ticker string, price float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastPrices == nil {
		b.lastPrices = make(map[string]float64)
	}
	b.lastPrices[ticker] = price
}

// LastPrices returns the most recent price seen for each ticker.
func (b *Bot) LastPrices() map[string]float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]float64, len(b.lastPrices))
	for k, v := range b.lastPrices {
		out[k] = v
	}
	return out
}

// Run polls until ctx is cancelled. Cancellation is the normal way to
// stop: the final valuation report and the full trade history are
// always flushed before returning, and the return value is nil.
func (b *Bot) Run(ctx context.Context) error {
	interval := b.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	b.Log.Info().Strs("tickers", b.Tickers).Str("strategy", b.Strategy.Name()).
		Dur("interval", interval).Float64("capital", b.Ledger.Cash()).Msg("bot started")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			b.shutdown()
			return nil
		case <-timer.C:
		}

		if err := b.RunOnce(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				b.shutdown()
				return nil
			}
			b.shutdown()
			return err
		}

		timer.Reset(interval)
	}
}

// shutdown flushes the final reports. This is a mandatory action, not
// best-effort: it runs on every exit path of Run.
func (b *Bot) shutdown() {
	b.Log.Info().Msg("bot stopping, flushing final reports")

	v := b.Ledger.Valuation(b.LastPrices())
	if b.Out != nil {
		WriteValuation(b.Out, v)
		WriteHistory(b.Out, b.Ledger.History())
	}
	if b.Journal != nil {
		if err := b.Journal.RecordValuation(v); err != nil {
			b.Log.Error().Err(err).Msg("journal valuation failed")
		}
	}
}
