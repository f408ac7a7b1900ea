// Package market holds the market data value types shared by the rest of
// the backtester. A Bar is one OHLCV sample for a fixed interval; prices
// and volume are exact decimals so that downstream accounting never
// accumulates binary floating-point drift.
package market

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one OHLCV sample. Bars are treated as immutable values; nothing
// in this module mutates a Bar after construction.
type Bar struct {
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// ValidateBars checks that the sequence is sorted ascending by timestamp.
// The replay loop assumes chronological order; feeding it an unsorted
// sequence would silently break the one-bar execution lag, so loaders
// call this before handing bars to an engine.
func ValidateBars(bars []Bar) error {
	for i := 1; i < len(bars); i++ {
		if bars[i].Time.Before(bars[i-1].Time) {
			return fmt.Errorf("market: bars out of order at index %d: %s before %s",
				i, bars[i].Time.Format(time.RFC3339), bars[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}
