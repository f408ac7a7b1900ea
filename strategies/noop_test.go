package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/backtester/portfolio"
)

func TestNoopAlwaysFlat(t *testing.T) {
	t.Parallel()

	s := Noop{}
	assert.Equal(t, "noop", s.Name())

	for i := 0; i < 5; i++ {
		target := s.Next(barClose("100", i), portfolio.State{})
		assert.True(t, target.IsZero())
	}
}
