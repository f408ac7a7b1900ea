// Package strategies contains the Strategy interface and the built-in
// reference strategies. Strategies observe bars and portfolio state and
// output a target position; they never create or execute orders.
package strategies

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/portfolio"
)

// Strategy is consulted exactly once per bar with the current bar and the
// just-recorded post-fill snapshot. Implementations must be deterministic
// and must not mutate the bar or the state. The returned decimal is the
// target position quantity; zero means flat.
type Strategy interface {
	Name() string
	Next(bar market.Bar, state portfolio.State) decimal.Decimal
}

// ByName constructs a built-in strategy. Lookback parameters that a
// strategy does not use are ignored.
func ByName(name string, lookback, fast, slow int, size decimal.Decimal) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return Noop{}, nil

	case "momentum":
		return NewMomentum(lookback, size)

	case "dual-ma", "dualma":
		return NewDualMA(fast, slow, size)

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, momentum, dual-ma)", name)
	}
}

// window is a bounded FIFO of recent closes shared by the SMA strategies.
type window struct {
	max    int
	closes []decimal.Decimal
}

func newWindow(max int) *window {
	return &window{max: max, closes: make([]decimal.Decimal, 0, max)}
}

func (w *window) push(c decimal.Decimal) {
	w.closes = append(w.closes, c)
	if len(w.closes) > w.max {
		w.closes = w.closes[1:]
	}
}

func (w *window) full() bool {
	return len(w.closes) == w.max
}

// sma averages the last n closes. Callers only ask once the window holds
// at least n values.
func (w *window) sma(n int) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range w.closes[len(w.closes)-n:] {
		sum = sum.Add(c)
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}
