package execution

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/market"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func barAt(open string, tm time.Time) market.Bar {
	return market.Bar{
		Time:   tm,
		Open:   d(open),
		High:   d(open),
		Low:    d(open),
		Close:  d(open),
		Volume: d("1"),
	}
}

func TestNewSimulatedRejectsNegativeFractions(t *testing.T) {
	t.Parallel()

	_, err := NewSimulated(d("-0.001"), d("0"))
	assert.Error(t, err)

	_, err = NewSimulated(d("0"), d("-0.0005"))
	assert.Error(t, err)

	_, err = NewSimulated(d("0"), d("0"))
	assert.NoError(t, err)
}

func TestExecuteSlippageAndFee(t *testing.T) {
	t.Parallel()

	tm := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		side      Side
		qty       string
		open      string
		fee       string
		slippage  string
		wantPrice string
		wantFee   string
	}{
		{
			name: "buy_pays_up", side: Buy,
			qty: "2", open: "100", fee: "0", slippage: "0.01",
			wantPrice: "101", wantFee: "0",
		},
		{
			name: "sell_receives_less", side: Sell,
			qty: "2", open: "100", fee: "0", slippage: "0.01",
			wantPrice: "99", wantFee: "0",
		},
		{
			name: "fee_on_notional", side: Buy,
			qty: "3", open: "200", fee: "0.001", slippage: "0",
			wantPrice: "200", wantFee: "0.6",
		},
		{
			name: "fee_charged_on_sells_too", side: Sell,
			qty: "3", open: "200", fee: "0.001", slippage: "0",
			wantPrice: "200", wantFee: "0.6",
		},
		{
			name: "zero_cost_passthrough", side: Buy,
			qty: "1", open: "123.45", fee: "0", slippage: "0",
			wantPrice: "123.45", wantFee: "0",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sim, err := NewSimulated(d(tt.fee), d(tt.slippage))
			require.NoError(t, err)

			fill := sim.Execute(Order{
				Symbol:   "BTCUSDT",
				Side:     tt.side,
				Quantity: d(tt.qty),
				Time:     tm.Add(-time.Hour),
			}, barAt(tt.open, tm))

			assert.True(t, d(tt.wantPrice).Equal(fill.Price), "price: got %s want %s", fill.Price, tt.wantPrice)
			assert.True(t, d(tt.wantFee).Equal(fill.Fee), "fee: got %s want %s", fill.Fee, tt.wantFee)
			assert.True(t, d(tt.qty).Equal(fill.Quantity))
			assert.Equal(t, tt.side, fill.Side)
			assert.Equal(t, tm, fill.Time, "fill carries the filling bar's timestamp")
		})
	}
}
