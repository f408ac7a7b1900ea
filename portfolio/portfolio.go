// Package portfolio tracks cash, position, and PnL for a single
// instrument using average-cost accounting. The Ledger is the only
// mutable object in a run and has exactly one owner (the backtest
// engine); everything it hands out is a value copy.
package portfolio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/execution"
)

// Position is a held quantity and its average cost basis. Positive
// quantity is long, zero is flat. AveragePrice is zero when flat.
type Position struct {
	Quantity     decimal.Decimal
	AveragePrice decimal.Decimal
}

// IsFlat reports whether no position is held.
func (p Position) IsFlat() bool {
	return p.Quantity.IsZero()
}

// State is a point-in-time snapshot of the ledger, marked at a given
// price. Snapshots are value copies: mutating the ledger afterwards
// never changes a State already handed out.
type State struct {
	Cash          decimal.Decimal
	Position      Position
	Equity        decimal.Decimal
	RealizedPnL   decimal.Decimal
	UnrealizedPnL decimal.Decimal
	Time          time.Time
}

// Ledger accumulates fills into cash, position, and realized PnL.
type Ledger struct {
	cash     decimal.Decimal
	position Position
	realized decimal.Decimal
}

// NewLedger starts a ledger with the given cash and a flat position.
func NewLedger(initialCash decimal.Decimal) *Ledger {
	return &Ledger{cash: initialCash}
}

// ApplyFill is the ledger's only mutator.
//
// Buys debit cash by notional+fee and blend the average cost basis:
// the new basis is the quantity-weighted mean of the old position's cost
// and the fill's cost. Sells credit cash by notional-fee, realize
// (price - basis) * quantity - fee, and leave the basis of whatever
// remains unchanged; selling flat resets the basis to zero.
//
// A sell larger than the held quantity is rejected. Crossing through
// zero would open a short whose cost-basis semantics this ledger does
// not define, so it fails fast instead of corrupting realized PnL.
func (l *Ledger) ApplyFill(f execution.Fill) error {
	if !f.Quantity.IsPositive() {
		return fmt.Errorf("portfolio: fill quantity must be positive, got %s", f.Quantity)
	}

	switch f.Side {
	case execution.Buy:
		l.cash = l.cash.Sub(f.Notional()).Sub(f.Fee)

		oldQty := l.position.Quantity
		newQty := oldQty.Add(f.Quantity)
		blended := oldQty.Mul(l.position.AveragePrice).Add(f.Quantity.Mul(f.Price)).Div(newQty)
		l.position = Position{Quantity: newQty, AveragePrice: blended}

	case execution.Sell:
		if f.Quantity.GreaterThan(l.position.Quantity) {
			return fmt.Errorf("portfolio: sell %s exceeds held quantity %s", f.Quantity, l.position.Quantity)
		}

		l.cash = l.cash.Add(f.Notional()).Sub(f.Fee)
		l.realized = l.realized.Add(f.Price.Sub(l.position.AveragePrice).Mul(f.Quantity)).Sub(f.Fee)

		newQty := l.position.Quantity.Sub(f.Quantity)
		if newQty.IsZero() {
			l.position = Position{}
		} else {
			l.position.Quantity = newQty
		}

	default:
		return fmt.Errorf("portfolio: unknown fill side %d", f.Side)
	}

	return nil
}

// EquityAt is cash plus the position marked at the given price.
func (l *Ledger) EquityAt(price decimal.Decimal) decimal.Decimal {
	return l.cash.Add(l.position.Quantity.Mul(price))
}

// UnrealizedAt is the mark-to-market PnL of the open position at the
// given price, zero when flat.
func (l *Ledger) UnrealizedAt(price decimal.Decimal) decimal.Decimal {
	if l.position.IsFlat() {
		return decimal.Zero
	}
	return price.Sub(l.position.AveragePrice).Mul(l.position.Quantity)
}

// StateAt assembles a snapshot marked at the given price and timestamp.
func (l *Ledger) StateAt(price decimal.Decimal, ts time.Time) State {
	return State{
		Cash:          l.cash,
		Position:      l.position,
		Equity:        l.EquityAt(price),
		RealizedPnL:   l.realized,
		UnrealizedPnL: l.UnrealizedAt(price),
		Time:          ts,
	}
}

// Cash currently held.
func (l *Ledger) Cash() decimal.Decimal { return l.cash }

// Position currently held (value copy).
func (l *Ledger) Position() Position { return l.position }

// RealizedPnL accumulated since inception.
func (l *Ledger) RealizedPnL() decimal.Decimal { return l.realized }
