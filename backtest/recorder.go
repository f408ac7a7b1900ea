// Package backtest drives the bar-by-bar replay loop and records its
// trace. The Recorder is the canonical log of a run: one portfolio
// snapshot per bar, at most one fill per bar, in chronological order.
package backtest

import (
	"time"

	"github.com/rustyeddy/backtester/execution"
	"github.com/rustyeddy/backtester/portfolio"
)

// EquityPoint is one (time, equity) sample of the equity curve, with
// equity reduced to float64 for reporting.
type EquityPoint struct {
	Time   time.Time
	Equity float64
}

// Recorder accumulates the append-only run trace. Downstream consumers
// (metrics, journal, report) treat the returned slices as read-only.
type Recorder struct {
	states []portfolio.State
	fills  []execution.Fill
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordState appends a portfolio snapshot. Called exactly once per bar
// by the engine.
func (r *Recorder) RecordState(s portfolio.State) {
	r.states = append(r.states, s)
}

// RecordFill appends an executed fill.
func (r *Recorder) RecordFill(f execution.Fill) {
	r.fills = append(r.fills, f)
}

// States returns the recorded snapshots in insertion order.
func (r *Recorder) States() []portfolio.State {
	return r.states
}

// Fills returns the recorded fills in insertion order.
func (r *Recorder) Fills() []execution.Fill {
	return r.fills
}

// EquityCurve reduces the state log to (time, equity) points.
func (r *Recorder) EquityCurve() []EquityPoint {
	curve := make([]EquityPoint, len(r.states))
	for i, s := range r.states {
		curve[i] = EquityPoint{Time: s.Time, Equity: s.Equity.InexactFloat64()}
	}
	return curve
}
