package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/metrics"
	"github.com/rustyeddy/backtester/portfolio"
)

func TestFormatSummaryUndefinedSharpe(t *testing.T) {
	t.Parallel()

	out := FormatSummary(metrics.Summary{Bars: 2, SharpeValid: false})
	assert.Contains(t, out, "Sharpe (ann.):  n/a")
	assert.NotContains(t, out, "Sharpe (ann.):  0.00")
}

func TestFormatSummaryValues(t *testing.T) {
	t.Parallel()

	out := FormatSummary(metrics.Summary{
		InitialEquity: 100000,
		FinalEquity:   108900,
		TotalReturn:   0.089,
		MaxDrawdown:   0.1,
		Sharpe:        1.2345,
		SharpeValid:   true,
		Trades:        4,
		Bars:          100,
	})

	assert.Contains(t, out, "Total return:   8.90%")
	assert.Contains(t, out, "Max drawdown:   10.00%")
	assert.Contains(t, out, "Sharpe (ann.):  1.23")
	assert.Contains(t, out, "Trades:         4")
}

func TestWriteEquityCSV(t *testing.T) {
	t.Parallel()

	rec := backtest.NewRecorder()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, eq := range []string{"1000", "1010.5"} {
		rec.RecordState(portfolio.State{
			Equity: decimal.RequireFromString(eq),
			Time:   base.Add(time.Duration(i) * time.Hour),
		})
	}

	var sb strings.Builder
	require.NoError(t, WriteEquityCSV(&sb, rec))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "time,equity", lines[0])
	assert.Equal(t, "2024-01-01T00:00:00Z,1000.000000", lines[1])
	assert.Equal(t, "2024-01-01T01:00:00Z,1010.500000", lines[2])
}
