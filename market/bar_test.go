package market

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func bar(i int) Bar {
	return Bar{
		Time:  time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC),
		Open:  decimal.NewFromInt(100),
		High:  decimal.NewFromInt(101),
		Low:   decimal.NewFromInt(99),
		Close: decimal.NewFromInt(100),
	}
}

func TestValidateBars(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateBars(nil))
	assert.NoError(t, ValidateBars([]Bar{bar(0)}))
	assert.NoError(t, ValidateBars([]Bar{bar(0), bar(1), bar(2)}))

	// Equal timestamps are tolerated; only regressions are rejected.
	assert.NoError(t, ValidateBars([]Bar{bar(1), bar(1)}))

	assert.Error(t, ValidateBars([]Bar{bar(2), bar(1)}))
	assert.Error(t, ValidateBars([]Bar{bar(0), bar(5), bar(3)}))
}
