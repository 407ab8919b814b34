package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MaiconJonatha/trading-bot/config"
	"github.com/MaiconJonatha/trading-bot/journal"
	"github.com/MaiconJonatha/trading-bot/quotes"
)

var rootCmd = &cobra.Command{
	Use:   "tradebot",
	Short: "A simulated stock trading bot",
	Long: `Tradebot is a simulated trading account driven by technical signals.

It fetches daily bars for a list of tickers, derives SMA-crossover or
RSI signals from them, and applies the resulting buy/sell decisions to
an in-memory cash-and-positions ledger. No real orders are placed and
nothing persists between runs except the optional trade journal.`,
}

var (
	cfgPath  string
	logLevel string
)

// Execute runs the root command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgPath)
}

func newLogger() zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
}

func newSource(cfg *config.Config) quotes.Source {
	return quotes.NewYahoo(cfg.Quotes.BaseURL, cfg.Quotes.Range)
}

func newJournal(cfg *config.Config) (journal.Journal, error) {
	switch strings.ToLower(cfg.Journal.Type) {
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.ValuationsFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	case "none", "":
		return journal.Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
}
