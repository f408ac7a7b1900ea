package strategies

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/portfolio"
)

// Compile-time interface check.
var _ Strategy = (*Momentum)(nil)

// Momentum targets a long position of `size` when the close is above its
// trailing simple moving average, flat otherwise. Stays flat until
// lookback bars have been observed.
type Momentum struct {
	lookback int
	size     decimal.Decimal
	win      *window
}

// NewMomentum builds a momentum strategy. lookback must be >= 1 and size
// strictly positive; anything else is a configuration error.
func NewMomentum(lookback int, size decimal.Decimal) (*Momentum, error) {
	if lookback < 1 {
		return nil, fmt.Errorf("momentum: lookback must be >= 1, got %d", lookback)
	}
	if !size.IsPositive() {
		return nil, fmt.Errorf("momentum: size must be positive, got %s", size)
	}
	return &Momentum{
		lookback: lookback,
		size:     size,
		win:      newWindow(lookback),
	}, nil
}

func (s *Momentum) Name() string { return "momentum" }

func (s *Momentum) Next(bar market.Bar, _ portfolio.State) decimal.Decimal {
	s.win.push(bar.Close)
	if !s.win.full() {
		return decimal.Zero
	}
	if bar.Close.GreaterThan(s.win.sma(s.lookback)) {
		return s.size
	}
	return decimal.Zero
}
