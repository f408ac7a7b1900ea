package journal

import (
	"encoding/csv"
	"os"
	"time"
)

// Compile-time interface check.
var _ Journal = (*CSVJournal)(nil)

type CSVJournal struct {
	fills  *csv.Writer
	states *csv.Writer
	ff, sf *os.File
}

func NewCSV(fillsPath, statesPath string) (*CSVJournal, error) {
	ff, err := os.Create(fillsPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(statesPath)
	if err != nil {
		ff.Close()
		return nil, err
	}

	fw := csv.NewWriter(ff)
	sw := csv.NewWriter(sf)

	if err := fw.Write([]string{"run_id", "symbol", "side", "quantity", "price", "fee", "time"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"run_id", "time", "cash", "equity", "realized_pnl", "unrealized_pnl", "position_qty", "average_price"}); err != nil {
		return nil, err
	}

	fw.Flush()
	if err := fw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{fills: fw, states: sw, ff: ff, sf: sf}, nil
}

func (j *CSVJournal) RecordFill(f FillRecord) error {
	err := j.fills.Write([]string{
		f.RunID,
		f.Symbol,
		f.Side,
		f.Quantity,
		f.Price,
		f.Fee,
		f.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.fills.Flush()
	return j.fills.Error()
}

func (j *CSVJournal) RecordState(s StateRecord) error {
	err := j.states.Write([]string{
		s.RunID,
		s.Time.Format(time.RFC3339),
		s.Cash,
		s.Equity,
		s.RealizedPnL,
		s.UnrealizedPnL,
		s.PositionQty,
		s.AveragePrice,
	})
	if err != nil {
		return err
	}
	j.states.Flush()
	return j.states.Error()
}

func (j *CSVJournal) Close() error {
	j.fills.Flush()
	if err := j.fills.Error(); err != nil {
		return err
	}
	j.states.Flush()
	if err := j.states.Error(); err != nil {
		return err
	}

	if err := j.ff.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}
