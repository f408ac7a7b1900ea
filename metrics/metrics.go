// Package metrics reduces a recorded run to performance numbers. This is
// the one layer where float64 is acceptable: inputs are already-aggregated
// equity values, and the outputs are ratios for human consumption.
package metrics

import (
	"math"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/portfolio"
)

// Summary is the aggregate result of a run. SharpeValid distinguishes a
// genuinely computed Sharpe from the degenerate cases (too little
// history, zero volatility); consumers must render an invalid Sharpe as
// an explicit absence, never as zero.
type Summary struct {
	InitialEquity  float64
	FinalEquity    float64
	TotalReturn    float64
	MaxDrawdown    float64
	MaxDrawdownAbs float64
	Sharpe         float64
	SharpeValid    bool
	Trades         int
	Bars           int
}

func equitySeries(states []portfolio.State) []float64 {
	eq := make([]float64, len(states))
	for i, s := range states {
		eq[i] = s.Equity.InexactFloat64()
	}
	return eq
}

// TotalReturn is (final - initial) / initial over the state sequence.
// Returns 0 with fewer than 2 states or a non-positive initial equity.
func TotalReturn(states []portfolio.State) float64 {
	if len(states) < 2 {
		return 0
	}
	initial := states[0].Equity.InexactFloat64()
	if initial <= 0 {
		return 0
	}
	final := states[len(states)-1].Equity.InexactFloat64()
	return (final - initial) / initial
}

// MaxDrawdown walks the equity series once, tracking the running peak,
// and returns the worst observed drawdown as a fraction of the peak plus
// its absolute size at that point. (0, 0) with fewer than 2 states.
func MaxDrawdown(states []portfolio.State) (pct, abs float64) {
	eq := equitySeries(states)
	if len(eq) < 2 {
		return 0, 0
	}

	peak := eq[0]
	for _, e := range eq {
		if e > peak {
			peak = e
		}
		ddAbs := peak - e
		ddPct := 0.0
		if peak > 0 {
			ddPct = ddAbs / peak
		}
		if ddPct > pct {
			pct = ddPct
			abs = ddAbs
		}
	}
	return pct, abs
}

// SharpeRatio annualizes mean/std of per-bar simple returns, each reduced
// by the per-period risk-free rate. The std is the population standard
// deviation. ok is false when there are fewer than 3 states, no valid
// returns (all predecessors non-positive), or zero volatility — an
// undefined Sharpe, distinct from zero.
func SharpeRatio(states []portfolio.State, periodsPerYear, riskFreeRate float64) (sharpe float64, ok bool) {
	eq := equitySeries(states)
	if len(eq) < 3 {
		return 0, false
	}

	var returns []float64
	for i := 1; i < len(eq); i++ {
		if eq[i-1] > 0 {
			returns = append(returns, (eq[i]-eq[i-1])/eq[i-1]-riskFreeRate/periodsPerYear)
		}
	}
	if len(returns) == 0 {
		return 0, false
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		dev := r - mean
		variance += dev * dev
	}
	variance /= float64(len(returns))

	std := math.Sqrt(variance)
	if std <= 0 {
		return 0, false
	}

	return mean / std * math.Sqrt(periodsPerYear), true
}

// Compute assembles the full Summary from a recorder. An empty recorder
// yields the zero-value placeholder (SharpeValid false) rather than an
// error.
func Compute(rec *backtest.Recorder, periodsPerYear, riskFreeRate float64) Summary {
	states := rec.States()
	if len(states) == 0 {
		return Summary{}
	}

	ddPct, ddAbs := MaxDrawdown(states)
	sharpe, ok := SharpeRatio(states, periodsPerYear, riskFreeRate)

	return Summary{
		InitialEquity:  states[0].Equity.InexactFloat64(),
		FinalEquity:    states[len(states)-1].Equity.InexactFloat64(),
		TotalReturn:    TotalReturn(states),
		MaxDrawdown:    ddPct,
		MaxDrawdownAbs: ddAbs,
		Sharpe:         sharpe,
		SharpeValid:    ok,
		Trades:         len(rec.Fills()),
		Bars:           len(states),
	}
}
