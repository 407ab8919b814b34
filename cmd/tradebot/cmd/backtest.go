package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MaiconJonatha/trading-bot/backtest"
	"github.com/MaiconJonatha/trading-bot/bot"
	"github.com/MaiconJonatha/trading-bot/journal"
	"github.com/MaiconJonatha/trading-bot/ledger"
)

var backtestCloseAtEnd bool

var backtestCmd = &cobra.Command{
	Use:   "backtest TICKER",
	Short: "Replay historical bars through the strategy",
	Long: `Fetch the configured history range for TICKER and replay it bar by
bar through the strategy against a fresh ledger. Orders fill at each
bar's close, with the same rules as the live loop: a fixed quantity
per BUY signal, full liquidation per SELL.`,
	Args: cobra.ExactArgs(1),
	RunE: runBacktest,
}

func init() {
	backtestCmd.Flags().BoolVar(&backtestCloseAtEnd, "close-at-end", false,
		"liquidate any open position at the final bar's close")
	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	strat, err := cfg.Strategy.Build()
	if err != nil {
		return err
	}

	ticker := args[0]
	series, err := newSource(cfg).History(cmd.Context(), ticker, cfg.Runner.HistoryBars)
	if err != nil {
		return err
	}

	r := &backtest.Runner{
		Strategy: strat,
		Ledger:   ledger.New(cfg.Account.InitialCapital, cfg.Account.RiskPerTrade),
		Journal:  journal.Nop{},
		Log:      newLogger(),
		Options: backtest.Options{
			OrderQty:   cfg.Runner.OrderQty,
			CloseAtEnd: backtestCloseAtEnd,
		},
	}

	res, err := r.Run(cmd.Context(), series)
	if err != nil {
		return err
	}

	fmt.Printf("\nBacktest %s on %s\n", res.Strategy, res.Ticker)
	fmt.Printf("  Bars:    %d (%s to %s)\n", res.Bars,
		res.Start.Format("2006-01-02"), res.End.Format("2006-01-02"))
	fmt.Printf("  Trades:  %d (%d wins, %d losses)\n", len(res.Trades), res.Wins, res.Losses)
	fmt.Printf("  Equity:  %.2f (%+.2f%%)\n", res.Final.Equity, res.Return)

	bot.WriteValuation(os.Stdout, res.Final)
	bot.WriteHistory(os.Stdout, res.Trades)
	return nil
}
