package execution

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/market"
)

// Compile-time interface check.
var _ Execution = (*Simulated)(nil)

var one = decimal.NewFromInt(1)

// Simulated fills orders at the given bar's open price, adjusted for
// slippage, and charges a proportional fee on notional. Both fractions
// are fixed for the lifetime of the simulator.
type Simulated struct {
	feePct      decimal.Decimal
	slippagePct decimal.Decimal
}

// NewSimulated builds a fill model with the given fee and slippage
// fractions (0.001 = 0.1%). Negative fractions are a configuration error.
func NewSimulated(feePct, slippagePct decimal.Decimal) (*Simulated, error) {
	if feePct.IsNegative() {
		return nil, fmt.Errorf("execution: fee_pct must be >= 0, got %s", feePct)
	}
	if slippagePct.IsNegative() {
		return nil, fmt.Errorf("execution: slippage_pct must be >= 0, got %s", slippagePct)
	}
	return &Simulated{feePct: feePct, slippagePct: slippagePct}, nil
}

// Execute prices the order at fillBar.Open with slippage against the
// taker: buys pay open*(1+slippage), sells receive open*(1-slippage).
// The fee is quantity*price*feePct regardless of side. The fill's
// timestamp is the filling bar's timestamp.
func (s *Simulated) Execute(order Order, fillBar market.Bar) Fill {
	price := fillBar.Open
	if order.Side == Buy {
		price = price.Mul(one.Add(s.slippagePct))
	} else {
		price = price.Mul(one.Sub(s.slippagePct))
	}

	fee := order.Quantity.Mul(price).Mul(s.feePct)

	return Fill{
		Symbol:   order.Symbol,
		Side:     order.Side,
		Quantity: order.Quantity,
		Price:    price,
		Fee:      fee,
		Time:     fillBar.Time,
	}
}
