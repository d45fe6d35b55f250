// Package outcome decides binary market outcomes from fixed-point prices.
//
// All comparisons are on integer mantissas at the same scale (1e8). The
// display layer may round prices for humans, but nothing floating-point is
// allowed anywhere near resolution.
package outcome

// Evaluate maps a final price to the market outcome.
//
// Standard markets ask "will the price be at or above target": the outcome
// is true iff finalPrice >= targetPrice. Inverted markets ask "will the
// price be below target": true iff finalPrice < targetPrice. The boundary
// finalPrice == targetPrice therefore resolves YES in standard mode and NO
// in inverted mode; the asymmetry is part of the market contract.
func Evaluate(startPrice, targetPrice, finalPrice int64, inverted bool) bool {
	if inverted {
		return finalPrice < targetPrice
	}

	return finalPrice >= targetPrice
}
