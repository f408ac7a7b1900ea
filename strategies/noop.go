package strategies

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/portfolio"
)

// Noop always targets flat. Useful as a baseline: a noop run should end
// with exactly the initial equity and zero trades.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) Next(_ market.Bar, _ portfolio.State) decimal.Decimal {
	return decimal.Zero
}
