package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MaiconJonatha/trading-bot/strategies"
)

var signalCmd = &cobra.Command{
	Use:   "signal TICKER",
	Short: "Run one strategy evaluation and print the signal",
	Long: `Fetch the bar history for TICKER, evaluate the configured strategy
once, and print the resulting BUY/SELL/HOLD signal. No order is executed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSignal,
}

func init() {
	rootCmd.AddCommand(signalCmd)
}

func runSignal(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("get history for %s: %w", ticker, err)
	}

	sig, err := strat.Evaluate(series)
	if err != nil {
		if errors.Is(err, strategies.ErrInsufficientData) {
			fmt.Printf("%s: no signal (%d bars is not enough for %s)\n",
				ticker, series.Len(), strat.Name())
			return nil
		}
		return err
	}

	fmt.Printf("%s: %s (%s over %d bars)\n", ticker, sig, strat.Name(), series.Len())
	return nil
}
