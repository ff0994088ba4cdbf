package vat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	amount, err := Calculate(100, 20)
	require.NoError(t, err)
	assert.Equal(t, 20.00, amount)

	amount, err = Calculate(33.33, 20)
	require.NoError(t, err)
	assert.Equal(t, 6.67, amount)

	amount, err = Calculate(0, 20)
	require.NoError(t, err)
	assert.Equal(t, 0.00, amount)
}

func TestTotalWithVAT(t *testing.T) {
	total, err := TotalWithVAT(100, 20)
	require.NoError(t, err)
	assert.Equal(t, 120.00, total)
}

func TestSubtotalFromTotal(t *testing.T) {
	subtotal, err := SubtotalFromTotal(120, 20)
	require.NoError(t, err)
	assert.Equal(t, 100.00, subtotal)
}

func TestRejectsNegativeArguments(t *testing.T) {
	_, err := Calculate(-1, 20)
	assert.Error(t, err)

	_, err = Calculate(100, -1)
	assert.Error(t, err)

	_, err = TotalWithVAT(-5, 20)
	assert.Error(t, err)

	_, err = SubtotalFromTotal(-5, 20)
	assert.Error(t, err)
}

// Round-tripping a subtotal through the inclusive total must land within one
// cent of where it started.
func TestRoundTrip(t *testing.T) {
	rates := []float64{0, 5, 12.5, 16, 20, 25}
	for subtotal := 0.0; subtotal < 500; subtotal += 7.39 {
		for _, rate := range rates {
			total, err := TotalWithVAT(subtotal, rate)
			require.NoError(t, err)

			back, err := SubtotalFromTotal(total, rate)
			require.NoError(t, err)

			assert.InDeltaf(t, Round2(subtotal), back, Tolerance,
				"subtotal=%.2f rate=%.1f", subtotal, rate)
		}
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, -1.24, Round2(-1.236))
	assert.Equal(t, 19.99, Round2(19.994))
	assert.Equal(t, 20.00, Round2(19.996))
}
