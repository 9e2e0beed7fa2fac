package pricing

import (
	"fmt"
	"math"
)

// FormatUSD renders a dollar amount for display. Display formatting is the
// only place amounts are rounded; formatted strings never feed back into a
// calculation.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// ToCents rounds a dollar amount to whole cents for persistence. Like display
// formatting this is an output boundary: applied once, never mid-calculation.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
