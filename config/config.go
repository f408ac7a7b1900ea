// Package config loads and validates run configuration. Monetary values
// are decimal strings in the file so that configuration never passes
// through binary floating point on its way to the ledger.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the complete configuration of a backtest run.
type Config struct {
	Data      DataConfig      `json:"data" yaml:"data"`
	Account   AccountConfig   `json:"account" yaml:"account"`
	Strategy  StrategyConfig  `json:"strategy" yaml:"strategy"`
	Execution ExecutionConfig `json:"execution" yaml:"execution"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
}

// DataConfig names the bar file and the symbol traded.
type DataConfig struct {
	Path   string `json:"path" yaml:"path"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	InitialCash string `json:"initial_cash" yaml:"initial_cash"`
}

// StrategyConfig contains strategy selection and parameters. Lookback is
// used by momentum; Fast/Slow by dual-ma.
type StrategyConfig struct {
	Name     string `json:"name" yaml:"name"`
	Lookback int    `json:"lookback" yaml:"lookback"`
	Fast     int    `json:"fast" yaml:"fast"`
	Slow     int    `json:"slow" yaml:"slow"`
	Size     string `json:"size" yaml:"size"`
}

// ExecutionConfig contains the transaction-cost model.
type ExecutionConfig struct {
	FeePct      string `json:"fee_pct" yaml:"fee_pct"`
	SlippagePct string `json:"slippage_pct" yaml:"slippage_pct"`
}

// JournalConfig selects how the run trace is archived.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	FillsFile  string `json:"fills_file,omitempty" yaml:"fills_file,omitempty"`
	StatesFile string `json:"states_file,omitempty" yaml:"states_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// MetricsConfig parameterizes annualization.
type MetricsConfig struct {
	PeriodsPerYear float64 `json:"periods_per_year" yaml:"periods_per_year"`
	RiskFreeRate   float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
}

// LoadFromFile loads configuration from a file, trying YAML first and
// falling back to JSON, then validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

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

// SaveToFile saves configuration as YAML or JSON based on extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration. All failures here are fatal
// construction errors; nothing is defaulted silently.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Data.Symbol == "" {
		return fmt.Errorf("data.symbol is required")
	}

	cash, err := c.InitialCash()
	if err != nil {
		return err
	}
	if !cash.IsPositive() {
		return fmt.Errorf("account.initial_cash must be positive, got %s", cash)
	}

	switch strings.ToLower(c.Strategy.Name) {
	case "noop", "none", "momentum", "dual-ma", "dualma":
	case "":
		return fmt.Errorf("strategy.name is required")
	default:
		return fmt.Errorf("unknown strategy.name %q", c.Strategy.Name)
	}
	if _, err := c.Size(); err != nil {
		return err
	}

	if fee, err := c.FeePct(); err != nil {
		return err
	} else if fee.IsNegative() {
		return fmt.Errorf("execution.fee_pct must be >= 0")
	}
	if slip, err := c.SlippagePct(); err != nil {
		return err
	} else if slip.IsNegative() {
		return fmt.Errorf("execution.slippage_pct must be >= 0")
	}

	switch c.Journal.Type {
	case "csv":
		if c.Journal.FillsFile == "" || c.Journal.StatesFile == "" {
			return fmt.Errorf("journal fills_file and states_file required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}

	if c.Metrics.PeriodsPerYear <= 0 {
		return fmt.Errorf("metrics.periods_per_year must be positive")
	}

	return nil
}

// InitialCash parses the account's starting cash.
func (c *Config) InitialCash() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Account.InitialCash)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account.initial_cash: %w", err)
	}
	return d, nil
}

// Size parses the strategy's long position size.
func (c *Config) Size() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Strategy.Size)
	if err != nil {
		return decimal.Zero, fmt.Errorf("strategy.size: %w", err)
	}
	return d, nil
}

// FeePct parses the fee fraction.
func (c *Config) FeePct() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Execution.FeePct)
	if err != nil {
		return decimal.Zero, fmt.Errorf("execution.fee_pct: %w", err)
	}
	return d, nil
}

// SlippagePct parses the slippage fraction.
func (c *Config) SlippagePct() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Execution.SlippagePct)
	if err != nil {
		return decimal.Zero, fmt.Errorf("execution.slippage_pct: %w", err)
	}
	return d, nil
}

// Default returns a configuration with sensible defaults: one year of
// hourly BTC bars, momentum over 20 bars, Binance-like costs.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path:   "data/BTCUSD_1h.parquet",
			Symbol: "BTC-USD",
		},
		Account: AccountConfig{
			InitialCash: "100000",
		},
		Strategy: StrategyConfig{
			Name:     "momentum",
			Lookback: 20,
			Fast:     10,
			Slow:     30,
			Size:     "0.01",
		},
		Execution: ExecutionConfig{
			FeePct:      "0.001",
			SlippagePct: "0.0005",
		},
		Journal: JournalConfig{
			Type:       "csv",
			FillsFile:  "./fills.csv",
			StatesFile: "./states.csv",
		},
		Metrics: MetricsConfig{
			PeriodsPerYear: 8760, // 1h bars
			RiskFreeRate:   0,
		},
	}
}
