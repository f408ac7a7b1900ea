package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/execution"
	"github.com/rustyeddy/backtester/portfolio"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "runs.sqlite")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('fills','states')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["fills"])
	assert.True(t, found["states"])
}

func TestSQLiteRecordRun(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	tm := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)

	rec := backtest.NewRecorder()
	rec.RecordState(portfolio.State{
		Cash:   decimal.RequireFromString("1000"),
		Equity: decimal.RequireFromString("1000"),
		Time:   tm,
	})
	rec.RecordState(portfolio.State{
		Cash:   decimal.RequireFromString("899"),
		Equity: decimal.RequireFromString("1000"),
		Position: portfolio.Position{
			Quantity:     decimal.RequireFromString("1"),
			AveragePrice: decimal.RequireFromString("101"),
		},
		Time: tm.Add(time.Hour),
	})
	rec.RecordFill(execution.Fill{
		Symbol:   "BTCUSDT",
		Side:     execution.Buy,
		Quantity: decimal.RequireFromString("1"),
		Price:    decimal.RequireFromString("101"),
		Fee:      decimal.Zero,
		Time:     tm.Add(time.Hour),
	})

	require.NoError(t, RecordRun(j, "01RUN", rec))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var nStates, nFills int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM states WHERE run_id = '01RUN'`).Scan(&nStates))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM fills WHERE run_id = '01RUN'`).Scan(&nFills))
	assert.Equal(t, 2, nStates)
	assert.Equal(t, 1, nFills)

	var side, qty, price string
	require.NoError(t, db.QueryRow(`SELECT side, quantity, price FROM fills WHERE run_id = '01RUN'`).
		Scan(&side, &qty, &price))
	assert.Equal(t, "BUY", side)
	assert.Equal(t, "1", qty)
	assert.Equal(t, "101", price)
}
