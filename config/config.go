// Package config loads and validates the bot configuration from a
// YAML or JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MaiconJonatha/trading-bot/strategies"
)

// Config is the complete bot configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Runner   RunnerConfig   `json:"runner" yaml:"runner"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Quotes   QuotesConfig   `json:"quotes" yaml:"quotes"`
}

// AccountConfig seeds the simulated ledger.
type AccountConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	// RiskPerTrade is carried on the ledger but does not size orders;
	// the runner buys a fixed quantity per signal.
	RiskPerTrade float64 `json:"risk_per_trade" yaml:"risk_per_trade"`
}

// StrategyConfig selects and parameterizes the signal strategy.
type StrategyConfig struct {
	Kind        string  `json:"kind" yaml:"kind"` // "crossover" or "rsi"
	ShortPeriod int     `json:"short_period" yaml:"short_period"`
	LongPeriod  int     `json:"long_period" yaml:"long_period"`
	RSIPeriod   int     `json:"rsi_period" yaml:"rsi_period"`
	Oversold    float64 `json:"oversold" yaml:"oversold"`
	Overbought  float64 `json:"overbought" yaml:"overbought"`
}

// Build constructs the configured strategy.
func (s StrategyConfig) Build() (strategies.Strategy, error) {
	kind, err := strategies.ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}
	return strategies.New(kind, strategies.Config{
		ShortPeriod: s.ShortPeriod,
		LongPeriod:  s.LongPeriod,
		RSIPeriod:   s.RSIPeriod,
		Oversold:    s.Oversold,
		Overbought:  s.Overbought,
	})
}

// RunnerConfig controls the polling loop.
type RunnerConfig struct {
	Tickers     []string `json:"tickers" yaml:"tickers"`
	Interval    string   `json:"interval" yaml:"interval"` // e.g. "60s", "5m"
	OrderQty    int64    `json:"order_qty" yaml:"order_qty"`
	HistoryBars int      `json:"history_bars" yaml:"history_bars"`
}

// ParseInterval converts the interval string to a time.Duration.
func (r RunnerConfig) ParseInterval() (time.Duration, error) {
	if r.Interval == "" {
		return time.Minute, nil
	}
	return time.ParseDuration(r.Interval)
}

// JournalConfig selects the journal backend.
type JournalConfig struct {
	Type           string `json:"type" yaml:"type"` // "csv", "sqlite", or "none"
	TradesFile     string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	ValuationsFile string `json:"valuations_file,omitempty" yaml:"valuations_file,omitempty"`
	DBPath         string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// QuotesConfig points the quote client at a provider.
type QuotesConfig struct {
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Range   string `json:"range,omitempty" yaml:"range,omitempty"` // e.g. "1mo", "3mo"
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Account.RiskPerTrade < 0 || c.Account.RiskPerTrade > 1 {
		return fmt.Errorf("account.risk_per_trade must be in [0, 1]")
	}

	if _, err := c.Strategy.Build(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	if len(c.Runner.Tickers) == 0 {
		return fmt.Errorf("runner.tickers must not be empty")
	}
	if _, err := c.Runner.ParseInterval(); err != nil {
		return fmt.Errorf("runner.interval: %w", err)
	}
	if c.Runner.OrderQty < 0 {
		return fmt.Errorf("runner.order_qty must not be negative")
	}

	switch strings.ToLower(c.Journal.Type) {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.ValuationsFile == "" {
			return fmt.Errorf("journal trades_file and valuations_file required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite', or 'none'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			InitialCapital: 10_000,
			RiskPerTrade:   0.02,
		},
		Strategy: StrategyConfig{
			Kind:        "crossover",
			ShortPeriod: 20,
			LongPeriod:  50,
			RSIPeriod:   14,
			Oversold:    30,
			Overbought:  70,
		},
		Runner: RunnerConfig{
			Tickers:     []string{"PETR4.SA", "VALE3.SA", "ITUB4.SA", "BBDC4.SA", "ABEV3.SA"},
			Interval:    "60s",
			OrderQty:    10,
			HistoryBars: 0,
		},
		Journal: JournalConfig{
			Type:           "csv",
			TradesFile:     "./trades.csv",
			ValuationsFile: "./valuations.csv",
		},
		Quotes: QuotesConfig{
			Range: "3mo",
		},
	}
}
