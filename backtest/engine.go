package backtest

import (
	"fmt"

	"github.com/rustyeddy/backtester/execution"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/portfolio"
	"github.com/rustyeddy/backtester/strategies"
)

// Engine replays a bar sequence through a strategy with a fixed one-bar
// execution lag: a decision taken on bar t becomes a fill at bar t+1's
// open. At most one order is pending at any time; the pending order is
// always resolved before the next decision is taken, so decisions can
// never compound against an unresolved order.
type Engine struct {
	strategy strategies.Strategy
	exec     execution.Execution
	ledger   *portfolio.Ledger
	recorder *Recorder
	symbol   string
}

// NewEngine wires a strategy, fill model, ledger, and recorder together
// for one run over one symbol.
func NewEngine(strategy strategies.Strategy, exec execution.Execution, ledger *portfolio.Ledger, rec *Recorder, symbol string) (*Engine, error) {
	if strategy == nil {
		return nil, fmt.Errorf("backtest: strategy is required")
	}
	if exec == nil {
		return nil, fmt.Errorf("backtest: execution is required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("backtest: ledger is required")
	}
	if rec == nil {
		return nil, fmt.Errorf("backtest: recorder is required")
	}
	return &Engine{
		strategy: strategy,
		exec:     exec,
		ledger:   ledger,
		recorder: rec,
		symbol:   symbol,
	}, nil
}

// Run replays the bars in order. Per bar:
//
//  1. fill the pending order (if any) at this bar's open and apply it
//  2. record a snapshot marked at this bar's close — after the fill,
//     before the new decision, so the equity curve is causally correct
//  3. ask the strategy for a target and hold any resulting order as
//     pending for the next bar
//
// An order still pending after the last bar has no bar to fill against
// and is dropped: the final bar's decision never trades. An empty bar
// sequence is a no-op. Run errors only on strategy contract violations
// (negative target) or ledger rejection (sell through zero).
func (e *Engine) Run(bars []market.Bar) error {
	var pending *execution.Order

	for _, bar := range bars {
		if pending != nil {
			fill := e.exec.Execute(*pending, bar)
			if err := e.ledger.ApplyFill(fill); err != nil {
				return fmt.Errorf("backtest: apply fill at %s: %w", bar.Time, err)
			}
			e.recorder.RecordFill(fill)
			pending = nil
		}

		state := e.ledger.StateAt(bar.Close, bar.Time)
		e.recorder.RecordState(state)

		target := e.strategy.Next(bar, state)
		if target.IsNegative() {
			return fmt.Errorf("backtest: strategy %q returned negative target %s at %s",
				e.strategy.Name(), target, bar.Time)
		}

		delta := target.Sub(e.ledger.Position().Quantity)
		if delta.IsZero() {
			continue
		}

		side := execution.Buy
		if delta.IsNegative() {
			side = execution.Sell
		}
		pending = &execution.Order{
			Symbol:   e.symbol,
			Side:     side,
			Quantity: delta.Abs(),
			Time:     bar.Time,
		}
	}

	return nil
}
