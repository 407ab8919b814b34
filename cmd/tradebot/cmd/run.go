package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MaiconJonatha/trading-bot/bot"
	"github.com/MaiconJonatha/trading-bot/ledger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the continuous trading loop",
	Long: `Poll the configured tickers on a fixed interval, evaluate the strategy
for each, and execute the resulting signals against the simulated ledger.

Stop with Ctrl+C: the bot flushes a final valuation report and the full
trade history before exiting.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	strat, err := cfg.Strategy.Build()
	if err != nil {
		return err
	}
	interval, err := cfg.Runner.ParseInterval()
	if err != nil {
		return err
	}
	j, err := newJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	// Interrupt is graceful shutdown, not an error exit.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := &bot.Bot{
		Ledger:      ledger.New(cfg.Account.InitialCapital, cfg.Account.RiskPerTrade),
		Source:      newSource(cfg),
		Strategy:    strat,
		Journal:     j,
		Log:         newLogger(),
		Out:         os.Stdout,
		Tickers:     cfg.Runner.Tickers,
		Interval:    interval,
		OrderQty:    cfg.Runner.OrderQty,
		HistoryBars: cfg.Runner.HistoryBars,
	}

	return b.Run(ctx)
}
