// Package data acquires and persists bar history. It sits outside the
// replay core: the engine only ever sees the fully-loaded, validated
// []market.Bar this package produces.
package data

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/market"
)

// BarRecord is the on-disk Parquet schema. Prices are float64 on disk
// (the interchange norm for bar files); they are converted to exact
// decimals on load before any accounting sees them.
type BarRecord struct {
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    float64 `parquet:"volume"`
}

// WriteBars writes the bars to a single Parquet file, creating parent
// directories as needed.
func WriteBars(path string, bars []market.Bar) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	records := make([]BarRecord, len(bars))
	for i, b := range bars {
		records[i] = BarRecord{
			Timestamp: b.Time.UnixMilli(),
			Open:      b.Open.InexactFloat64(),
			High:      b.High.InexactFloat64(),
			Low:       b.Low.InexactFloat64(),
			Close:     b.Close.InexactFloat64(),
			Volume:    b.Volume.InexactFloat64(),
		}
	}

	if err := parquet.WriteFile(path, records); err != nil {
		return fmt.Errorf("data: write %s: %w", path, err)
	}
	return nil
}

// ReadBars loads every bar in the file, sorted ascending by timestamp.
func ReadBars(path string) ([]market.Bar, error) {
	records, err := parquet.ReadFile[BarRecord](path)
	if err != nil {
		return nil, fmt.Errorf("data: read %s: %w", path, err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp < records[j].Timestamp
	})

	bars := make([]market.Bar, len(records))
	for i, r := range records {
		bars[i] = market.Bar{
			Time:   time.UnixMilli(r.Timestamp).UTC(),
			Open:   decimal.NewFromFloat(r.Open),
			High:   decimal.NewFromFloat(r.High),
			Low:    decimal.NewFromFloat(r.Low),
			Close:  decimal.NewFromFloat(r.Close),
			Volume: decimal.NewFromFloat(r.Volume),
		}
	}

	if err := market.ValidateBars(bars); err != nil {
		return nil, err
	}
	return bars, nil
}
