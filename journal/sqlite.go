package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Compile-time interface check.
var _ Journal = (*SQLiteJournal)(nil)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordFill(f FillRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO fills
		(run_id, symbol, side, quantity, price, fee, time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.RunID, f.Symbol, f.Side, f.Quantity, f.Price, f.Fee, f.Time,
	)
	return err
}

func (j *SQLiteJournal) RecordState(s StateRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO states
		(run_id, time, cash, equity, realized_pnl, unrealized_pnl, position_qty, average_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Time, s.Cash, s.Equity, s.RealizedPnL, s.UnrealizedPnL, s.PositionQty, s.AveragePrice,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
