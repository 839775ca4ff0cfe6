package pricing

import "math"

// DefaultTaxRate is the French standard VAT rate.
const DefaultTaxRate = 0.2

// WithTax converts a pre-tax amount to its tax-inclusive figure, rounded
// to the cent. Only used for display.
func WithTax(amount, rate float64) float64 {
	return math.Round(amount*(1+rate)*100) / 100
}
