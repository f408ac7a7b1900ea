// Package journal persists run traces for later inspection. It is a
// downstream consumer of the recorder: the hot loop never touches it.
// Decimals are stored as strings so the archive stays exact.
package journal

import (
	"time"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/execution"
	"github.com/rustyeddy/backtester/portfolio"
)

// FillRecord is one executed trade, keyed by the run it belongs to.
type FillRecord struct {
	RunID    string
	Symbol   string
	Side     string
	Quantity string
	Price    string
	Fee      string
	Time     time.Time
}

// StateRecord is one per-bar portfolio snapshot, keyed by run.
type StateRecord struct {
	RunID         string
	Time          time.Time
	Cash          string
	Equity        string
	RealizedPnL   string
	UnrealizedPnL string
	PositionQty   string
	AveragePrice  string
}

// Journal records fills and state snapshots somewhere durable.
type Journal interface {
	RecordFill(FillRecord) error
	RecordState(StateRecord) error
	Close() error
}

// NewFillRecord converts an execution fill for archival.
func NewFillRecord(runID string, f execution.Fill) FillRecord {
	return FillRecord{
		RunID:    runID,
		Symbol:   f.Symbol,
		Side:     f.Side.String(),
		Quantity: f.Quantity.String(),
		Price:    f.Price.String(),
		Fee:      f.Fee.String(),
		Time:     f.Time,
	}
}

// NewStateRecord converts a portfolio snapshot for archival.
func NewStateRecord(runID string, s portfolio.State) StateRecord {
	return StateRecord{
		RunID:         runID,
		Time:          s.Time,
		Cash:          s.Cash.String(),
		Equity:        s.Equity.String(),
		RealizedPnL:   s.RealizedPnL.String(),
		UnrealizedPnL: s.UnrealizedPnL.String(),
		PositionQty:   s.Position.Quantity.String(),
		AveragePrice:  s.Position.AveragePrice.String(),
	}
}

// RecordRun archives a completed recorder log under the given run ID,
// states first, then fills, each in chronological order.
func RecordRun(j Journal, runID string, rec *backtest.Recorder) error {
	for _, s := range rec.States() {
		if err := j.RecordState(NewStateRecord(runID, s)); err != nil {
			return err
		}
	}
	for _, f := range rec.Fills() {
		if err := j.RecordFill(NewFillRecord(runID, f)); err != nil {
			return err
		}
	}
	return nil
}
