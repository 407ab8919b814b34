package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MaiconJonatha/trading-bot/bot"
	"github.com/MaiconJonatha/trading-bot/config"
	"github.com/MaiconJonatha/trading-bot/journal"
	"github.com/MaiconJonatha/trading-bot/ledger"
	"github.com/MaiconJonatha/trading-bot/quotes"
	"github.com/MaiconJonatha/trading-bot/strategies"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"shell"},
	Short:   "Drive one simulated account from an interactive prompt",
	Long: `Start an interactive session holding a single in-memory ledger.

Commands map one-to-one onto the core operations:

  price TICKER        look up the current price
  buy TICKER QTY      buy at the current price
  sell TICKER QTY     sell at the current price
  positions           show open positions and valuation
  history             show the trade history
  signal TICKER       evaluate the strategy once
  run                 run the polling loop until Ctrl+C
  quit                exit (prints the final valuation first)

The ledger lives only for the session; nothing persists on exit.`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// session holds the state shared by all interactive commands.
type session struct {
	cfg      *config.Config
	ledger   *ledger.Ledger
	source   quotes.Source
	strategy strategies.Strategy
	journal  journal.Journal
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	strat, err := cfg.Strategy.Build()
	if err != nil {
		return err
	}
	j, err := newJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	s := &session{
		cfg:      cfg,
		ledger:   ledger.New(cfg.Account.InitialCapital, cfg.Account.RiskPerTrade),
		source:   newSource(cfg),
		strategy: strat,
		journal:  j,
	}

	// Dispatch table: command word -> handler. Unknown words report an
	// error and keep the loop going; they never touch the ledger.
	commands := map[string]func(ctx context.Context, args []string) error{
		"price":     s.cmdPrice,
		"buy":       s.cmdBuy,
		"sell":      s.cmdSell,
		"positions": s.cmdPositions,
		"history":   s.cmdHistory,
		"signal":    s.cmdSignal,
		"run":       s.cmdRun,
	}

	fmt.Printf("Trading bot ready with capital %.2f. Type 'help' for commands.\n",
		cfg.Account.InitialCapital)

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		name := strings.ToLower(fields[0])
		switch name {
		case "quit", "exit":
			s.cmdPositions(cmd.Context(), nil)
			fmt.Println("Bye.")
			return nil
		case "help":
			fmt.Print(cmd.Long, "\n")
			continue
		}

		handler, ok := commands[name]
		if !ok {
			fmt.Printf("unknown command %q, type 'help'\n", name)
			continue
		}
		if err := handler(cmd.Context(), fields[1:]); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
	return sc.Err()
}

func (s *session) cmdPrice(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: price TICKER")
	}
	price, err := s.source.CurrentPrice(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %.2f\n", args[0], price)
	return nil
}

func (s *session) cmdBuy(ctx context.Context, args []string) error {
	ticker, qty, err := parseOrderArgs("buy", args)
	if err != nil {
		return err
	}
	price, err := s.source.CurrentPrice(ctx, ticker)
	if err != nil {
		return err
	}

	trade, err := s.ledger.Buy(ticker, qty, price)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			fmt.Printf("buy declined: %v\n", err)
			return nil
		}
		return err
	}

	fmt.Printf("BUY %d %s @ %.2f = %.2f (cash %.2f)\n",
		trade.Quantity, trade.Ticker, trade.Price, trade.Notional, s.ledger.Cash())
	return s.journal.RecordTrade(trade)
}

func (s *session) cmdSell(ctx context.Context, args []string) error {
	ticker, qty, err := parseOrderArgs("sell", args)
	if err != nil {
		return err
	}
	price, err := s.source.CurrentPrice(ctx, ticker)
	if err != nil {
		return err
	}

	trade, err := s.ledger.Sell(ticker, qty, price)
	if err != nil {
		if errors.Is(err, ledger.ErrNoPosition) || errors.Is(err, ledger.ErrInsufficientHoldings) {
			fmt.Printf("sell declined: %v\n", err)
			return nil
		}
		return err
	}

	fmt.Printf("SELL %d %s @ %.2f = %.2f, profit %.2f (%+.2f%%)\n",
		trade.Quantity, trade.Ticker, trade.Price, trade.Notional,
		trade.Profit, trade.ProfitPct)
	return s.journal.RecordTrade(trade)
}

func (s *session) cmdPositions(ctx context.Context, args []string) error {
	prices := make(map[string]float64)
	for _, pos := range s.ledger.Positions() {
		price, err := s.source.CurrentPrice(ctx, pos.Ticker)
		if err != nil {
			continue // skip tickers without a quote
		}
		prices[pos.Ticker] = price
	}
	bot.WriteValuation(os.Stdout, s.ledger.Valuation(prices))
	return nil
}

func (s *session) cmdHistory(ctx context.Context, args []string) error {
	bot.WriteHistory(os.Stdout, s.ledger.History())
	return nil
}

func (s *session) cmdSignal(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: signal TICKER")
	}
	series, err := s.source.History(ctx, args[0], s.cfg.Runner.HistoryBars)
	if err != nil {
		return err
	}
	sig, err := s.strategy.Evaluate(series)
	if err != nil {
		if errors.Is(err, strategies.ErrInsufficientData) {
			fmt.Printf("%s: no signal (not enough bars)\n", args[0])
			return nil
		}
		return err
	}
	fmt.Printf("%s: %s\n", args[0], sig)
	return nil
}

// cmdRun runs the polling loop on the session ledger until Ctrl+C,
// then returns to the prompt.
func (s *session) cmdRun(ctx context.Context, args []string) error {
	interval, err := s.cfg.Runner.ParseInterval()
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := &bot.Bot{
		Ledger:      s.ledger,
		Source:      s.source,
		Strategy:    s.strategy,
		Journal:     s.journal,
		Log:         newLogger(),
		Out:         os.Stdout,
		Tickers:     s.cfg.Runner.Tickers,
		Interval:    interval,
		OrderQty:    s.cfg.Runner.OrderQty,
		HistoryBars: s.cfg.Runner.HistoryBars,
	}

	fmt.Println("Running; press Ctrl+C to stop and return to the prompt.")
	return b.Run(runCtx)
}

func parseOrderArgs(verb string, args []string) (ticker string, qty int64, err error) {
	if len(args) != 2 {
		return "", 0, fmt.Errorf("usage: %s TICKER QTY", verb)
	}
	qty, err = strconv.ParseInt(args[1], 10, 64)
	if err != nil || qty <= 0 {
		return "", 0, fmt.Errorf("quantity must be a positive integer, got %q", args[1])
	}
	return args[0], qty, nil
}
