package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/data"
	"github.com/rustyeddy/backtester/internal/util"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download daily bars and save them as Parquet",
	Long: `Download fetches daily OHLCV bars from Yahoo Finance and writes them
to a Parquet file for later backtesting.

Example:
  backtester download --symbol BTC-USD --days 730 --out data/BTCUSD_1d.parquet`,
	RunE: runDownload,
}

var (
	dlSymbol   string
	dlDays     int
	dlOut      string
	dlLogLevel string
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&dlSymbol, "symbol", "i", "BTC-USD", "symbol to download (Yahoo format)")
	downloadCmd.Flags().IntVar(&dlDays, "days", 365, "number of calendar days of history")
	downloadCmd.Flags().StringVarP(&dlOut, "out", "o", "", "output Parquet path (required)")
	downloadCmd.Flags().StringVar(&dlLogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	downloadCmd.MarkFlagRequired("out")
}

func runDownload(cmd *cobra.Command, args []string) error {
	log := util.NewLogger(dlLogLevel)

	bars, err := data.Download(dlSymbol, dlDays)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	log.Info("bars downloaded", "symbol", dlSymbol, "count", len(bars))

	if err := data.WriteBars(dlOut, bars); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	fmt.Printf("Wrote %d bars to %s\n", len(bars), dlOut)
	return nil
}
