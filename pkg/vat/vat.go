package vat

import (
	"math"

	"github.com/tablewise/tablewise-api/pkg/apperror"
)

// Tolerance is the rounding slack allowed when comparing currency amounts.
const Tolerance = 0.01

// Round2 rounds a currency amount to 2 decimal places, half away from zero.
// Every place money is rounded in the application goes through this function.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Calculate returns the VAT amount for a pre-tax subtotal at the given
// percentage rate (e.g. 20 for 20%).
func Calculate(subtotal, rate float64) (float64, error) {
	if err := validate(subtotal, rate); err != nil {
		return 0, err
	}
	return Round2(subtotal * rate / 100), nil
}

// TotalWithVAT returns the tax-inclusive total for a pre-tax subtotal.
func TotalWithVAT(subtotal, rate float64) (float64, error) {
	tax, err := Calculate(subtotal, rate)
	if err != nil {
		return 0, err
	}
	return Round2(subtotal + tax), nil
}

// SubtotalFromTotal extracts the pre-tax subtotal from a tax-inclusive total.
func SubtotalFromTotal(total, rate float64) (float64, error) {
	if err := validate(total, rate); err != nil {
		return 0, err
	}
	return Round2(total / (1 + rate/100)), nil
}

func validate(amount, rate float64) error {
	if amount < 0 {
		return apperror.NewBadRequestError("Amount must not be negative")
	}
	if rate < 0 {
		return apperror.NewBadRequestError("VAT rate must not be negative")
	}
	return nil
}
