package strategies

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/portfolio"
)

// Compile-time interface check.
var _ Strategy = (*DualMA)(nil)

// DualMA targets a long position of `size` when the fast SMA of closes
// is above the slow SMA, flat otherwise. Stays flat until slow bars have
// been observed.
type DualMA struct {
	fast int
	slow int
	size decimal.Decimal
	win  *window
}

// NewDualMA builds a dual moving average crossover strategy. Both
// lookbacks must be >= 1, fast strictly less than slow, and size
// strictly positive.
func NewDualMA(fast, slow int, size decimal.Decimal) (*DualMA, error) {
	if fast < 1 || slow < 1 {
		return nil, fmt.Errorf("dual-ma: lookbacks must be >= 1, got fast=%d slow=%d", fast, slow)
	}
	if fast >= slow {
		return nil, fmt.Errorf("dual-ma: fast lookback must be < slow, got fast=%d slow=%d", fast, slow)
	}
	if !size.IsPositive() {
		return nil, fmt.Errorf("dual-ma: size must be positive, got %s", size)
	}
	return &DualMA{
		fast: fast,
		slow: slow,
		size: size,
		win:  newWindow(slow),
	}, nil
}

func (s *DualMA) Name() string { return "dual-ma" }

func (s *DualMA) Next(bar market.Bar, _ portfolio.State) decimal.Decimal {
	s.win.push(bar.Close)
	if !s.win.full() {
		return decimal.Zero
	}
	if s.win.sma(s.fast).GreaterThan(s.win.sma(s.slow)) {
		return s.size
	}
	return decimal.Zero
}
