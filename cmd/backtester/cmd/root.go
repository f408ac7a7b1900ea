package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "An event-driven backtester for single-asset trading strategies",
	Long: `Backtester replays historical price bars through a trading strategy
with a causally-correct one-bar execution lag and exact decimal accounting.

It provides tools for:
  - Downloading daily market data to Parquet files
  - Replaying bar history through built-in strategies
  - Archiving run traces (fills and equity snapshots) to CSV or SQLite
  - Computing total return, max drawdown, and annualized Sharpe`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
