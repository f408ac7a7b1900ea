// Package execution converts orders into fills. The only implementation
// today is the simulated next-bar-open model; a live venue adapter would
// satisfy the same interface.
package execution

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/market"
)

// Side of an order or fill. +1 buy, -1 sell.
type Side int8

const (
	Buy  Side = +1
	Sell Side = -1
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Order is an instruction to buy or sell. Orders are created by the
// backtest engine (never by strategies) at bar t and consumed by an
// Execution at bar t+1. Quantity is strictly positive; the side carries
// the direction.
type Order struct {
	Symbol   string
	Side     Side
	Quantity decimal.Decimal
	Time     time.Time
}

// Fill is the executed outcome of an Order against a specific bar,
// inclusive of slippage and fee. Immutable once produced.
type Fill struct {
	Symbol   string
	Side     Side
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Fee      decimal.Decimal
	Time     time.Time
}

// Notional is quantity * price.
func (f Fill) Notional() decimal.Decimal {
	return f.Quantity.Mul(f.Price)
}

// Execution turns an order into a fill against the given bar. The caller
// decides which bar an order fills against; implementations only price
// the fill. Execute never fails: the simulated environment accepts every
// order, which is exactly what makes it a simulation rather than a venue.
type Execution interface {
	Execute(order Order, fillBar market.Bar) Fill
}
