package types

import "github.com/shopspring/decimal"

// PercentHalfUp returns percent% of amountCents rounded half-up to a whole
// cent. Every percentage-derived figure in the app (service fee, deposit) goes
// through this single helper so the numbers the storefront shows, the booking
// rows store, and the notification endpoint renders can never disagree.
func PercentHalfUp(amountCents int, percent float64) int {
	result := decimal.NewFromInt(int64(amountCents)).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return int(result.IntPart())
}
