package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/config"
	"github.com/rustyeddy/backtester/data"
	"github.com/rustyeddy/backtester/execution"
	"github.com/rustyeddy/backtester/internal/util"
	"github.com/rustyeddy/backtester/journal"
	"github.com/rustyeddy/backtester/metrics"
	"github.com/rustyeddy/backtester/pkg/id"
	"github.com/rustyeddy/backtester/portfolio"
	"github.com/rustyeddy/backtester/report"
	"github.com/rustyeddy/backtester/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest over a Parquet bar file",
	Long: `Run replays the configured bar file through a strategy and prints the
performance summary. The full run trace (per-bar equity snapshots and
fills) is archived under a fresh run ID when a journal is configured.

Supported strategies:
  - noop: always flat (baseline)
  - momentum: long when close > SMA(lookback), else flat
  - dual-ma: long when SMA(fast) > SMA(slow), else flat

Example:
  backtester run --config config.yaml
  backtester run --bars data/BTCUSD_1h.parquet --symbol BTC-USD --strategy dual-ma --fast 10 --slow 30`,
	RunE: runRun,
}

var (
	runConfigPath  string
	runBarsPath    string
	runSymbol      string
	runCash        string
	runStrategy    string
	runLookback    int
	runFast        int
	runSlow        int
	runSize        string
	runFeePct      string
	runSlippagePct string
	runJournalType string
	runDBPath      string
	runFillsFile   string
	runStatesFile  string
	runEquityCSV   string
	runPeriods     float64
	runRiskFree    float64
	runLogLevel    string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to YAML/JSON config (overrides all other flags)")

	runCmd.Flags().StringVarP(&runBarsPath, "bars", "b", "", "path to Parquet bar file")
	runCmd.Flags().StringVarP(&runSymbol, "symbol", "i", "BTC-USD", "symbol being traded")
	runCmd.Flags().StringVar(&runCash, "cash", "100000", "starting cash (decimal)")

	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "momentum", "strategy name (noop, momentum, dual-ma)")
	runCmd.Flags().IntVar(&runLookback, "lookback", 20, "momentum: SMA lookback in bars")
	runCmd.Flags().IntVar(&runFast, "fast", 10, "dual-ma: fast SMA lookback")
	runCmd.Flags().IntVar(&runSlow, "slow", 30, "dual-ma: slow SMA lookback")
	runCmd.Flags().StringVar(&runSize, "size", "0.01", "target position size when long (decimal)")

	runCmd.Flags().StringVar(&runFeePct, "fee-pct", "0.001", "fee as fraction of notional (decimal)")
	runCmd.Flags().StringVar(&runSlippagePct, "slippage-pct", "0.0005", "slippage as price fraction (decimal)")

	runCmd.Flags().StringVar(&runJournalType, "journal", "none", "run archive: csv, sqlite or none")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", "./runs.sqlite", "path to SQLite journal DB")
	runCmd.Flags().StringVar(&runFillsFile, "fills-file", "./fills.csv", "CSV journal: fills output path")
	runCmd.Flags().StringVar(&runStatesFile, "states-file", "./states.csv", "CSV journal: states output path")
	runCmd.Flags().StringVar(&runEquityCSV, "equity-csv", "", "optional path for an equity curve CSV export")

	runCmd.Flags().Float64Var(&runPeriods, "periods-per-year", 8760, "bar periods per year for annualization")
	runCmd.Flags().Float64Var(&runRiskFree, "risk-free", 0, "annual risk-free rate")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func runConfig() (*config.Config, error) {
	if runConfigPath != "" {
		return config.LoadFromFile(runConfigPath)
	}

	cfg := &config.Config{
		Data: config.DataConfig{
			Path:   runBarsPath,
			Symbol: runSymbol,
		},
		Account: config.AccountConfig{InitialCash: runCash},
		Strategy: config.StrategyConfig{
			Name:     runStrategy,
			Lookback: runLookback,
			Fast:     runFast,
			Slow:     runSlow,
			Size:     runSize,
		},
		Execution: config.ExecutionConfig{
			FeePct:      runFeePct,
			SlippagePct: runSlippagePct,
		},
		Journal: config.JournalConfig{
			Type:       runJournalType,
			FillsFile:  runFillsFile,
			StatesFile: runStatesFile,
			DBPath:     runDBPath,
		},
		Metrics: config.MetricsConfig{
			PeriodsPerYear: runPeriods,
			RiskFreeRate:   runRiskFree,
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.FillsFile, cfg.Journal.StatesFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return nil, nil
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	log := util.NewLogger(runLogLevel)

	cfg, err := runConfig()
	if err != nil {
		return err
	}

	bars, err := data.ReadBars(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	log.Info("bars loaded", "path", cfg.Data.Path, "count", len(bars))

	size, err := cfg.Size()
	if err != nil {
		return err
	}
	strat, err := strategies.ByName(cfg.Strategy.Name, cfg.Strategy.Lookback, cfg.Strategy.Fast, cfg.Strategy.Slow, size)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	feePct, err := cfg.FeePct()
	if err != nil {
		return err
	}
	slippagePct, err := cfg.SlippagePct()
	if err != nil {
		return err
	}
	exec, err := execution.NewSimulated(feePct, slippagePct)
	if err != nil {
		return fmt.Errorf("execution: %w", err)
	}

	cash, err := cfg.InitialCash()
	if err != nil {
		return err
	}

	rec := backtest.NewRecorder()
	engine, err := backtest.NewEngine(strat, exec, portfolio.NewLedger(cash), rec, cfg.Data.Symbol)
	if err != nil {
		return err
	}

	if err := engine.Run(bars); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	sum := metrics.Compute(rec, cfg.Metrics.PeriodsPerYear, cfg.Metrics.RiskFreeRate)
	fmt.Print(report.FormatSummary(sum))

	runID := id.New()

	j, err := newJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
		if err := journal.RecordRun(j, runID, rec); err != nil {
			return fmt.Errorf("archive run: %w", err)
		}
		log.Info("run archived", "run_id", runID, "journal", cfg.Journal.Type)
	}

	if runEquityCSV != "" {
		f, err := os.Create(runEquityCSV)
		if err != nil {
			return fmt.Errorf("equity csv: %w", err)
		}
		defer f.Close()
		if err := report.WriteEquityCSV(f, rec); err != nil {
			return fmt.Errorf("equity csv: %w", err)
		}
		log.Info("equity curve written", "path", runEquityCSV)
	}

	return nil
}
