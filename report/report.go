// Package report renders run results for humans and exports the equity
// curve. It consumes the recorder and summary read-only.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/metrics"
)

// FormatSummary renders the run summary as text. An undefined Sharpe is
// shown as "n/a" — never zero, which would read as a real (terrible)
// risk-adjusted return.
func FormatSummary(sum metrics.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Backtest Result\n")
	fmt.Fprintf(&b, "  Bars:           %d\n", sum.Bars)
	fmt.Fprintf(&b, "  Trades:         %d\n", sum.Trades)
	fmt.Fprintf(&b, "  Initial equity: %.2f\n", sum.InitialEquity)
	fmt.Fprintf(&b, "  Final equity:   %.2f\n", sum.FinalEquity)
	fmt.Fprintf(&b, "  Total return:   %.2f%%\n", sum.TotalReturn*100)
	fmt.Fprintf(&b, "  Max drawdown:   %.2f%% (%.2f)\n", sum.MaxDrawdown*100, sum.MaxDrawdownAbs)
	if sum.SharpeValid {
		fmt.Fprintf(&b, "  Sharpe (ann.):  %.2f\n", sum.Sharpe)
	} else {
		fmt.Fprintf(&b, "  Sharpe (ann.):  n/a\n")
	}

	return b.String()
}

// WriteEquityCSV writes the equity curve as "time,equity" rows.
func WriteEquityCSV(w io.Writer, rec *backtest.Recorder) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "equity"}); err != nil {
		return err
	}
	for _, p := range rec.EquityCurve() {
		err := cw.Write([]string{
			p.Time.Format(time.RFC3339),
			strconv.FormatFloat(p.Equity, 'f', 6, 64),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
