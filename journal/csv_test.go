package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCSV(t *testing.T) (*CSVJournal, string, string) {
	t.Helper()

	dir := t.TempDir()
	fillsPath := filepath.Join(dir, "fills.csv")
	statesPath := filepath.Join(dir, "states.csv")

	j, err := NewCSV(fillsPath, statesPath)
	require.NoError(t, err)

	return j, fillsPath, statesPath
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	j, fillsPath, statesPath := newTestCSV(t)
	require.NoError(t, j.Close())

	fills := readCSV(t, fillsPath)
	states := readCSV(t, statesPath)

	assert.Equal(t, []string{"run_id", "symbol", "side", "quantity", "price", "fee", "time"}, fills[0])
	assert.Equal(t, []string{"run_id", "time", "cash", "equity", "realized_pnl", "unrealized_pnl", "position_qty", "average_price"}, states[0])
}

func TestCSVJournalRecords(t *testing.T) {
	t.Parallel()

	j, fillsPath, statesPath := newTestCSV(t)

	tm := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, j.RecordFill(FillRecord{
		RunID:    "01RUN",
		Symbol:   "BTCUSDT",
		Side:     "BUY",
		Quantity: "0.5",
		Price:    "30015.0075",
		Fee:      "15.00750375",
		Time:     tm,
	}))
	require.NoError(t, j.RecordState(StateRecord{
		RunID:         "01RUN",
		Time:          tm,
		Cash:          "84977.48",
		Equity:        "99985.0",
		RealizedPnL:   "0",
		UnrealizedPnL: "-7.5",
		PositionQty:   "0.5",
		AveragePrice:  "30015.0075",
	}))
	require.NoError(t, j.Close())

	fills := readCSV(t, fillsPath)
	require.Len(t, fills, 2)
	assert.Equal(t, []string{"01RUN", "BTCUSDT", "BUY", "0.5", "30015.0075", "15.00750375", "2024-01-02T03:04:05Z"}, fills[1])

	states := readCSV(t, statesPath)
	require.Len(t, states, 2)
	assert.Equal(t, "84977.48", states[1][2])
	assert.Equal(t, "30015.0075", states[1][7])
}
