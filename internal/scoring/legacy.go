package scoring

import "math"

// LegacyScore is the original single-number purchase score: ARV ratio only,
// with a 75% threshold and one point deducted per full 2.5 percentage points
// above it.
//
// Deprecated: superseded by HoldScore and FlipScore. Kept because existing
// call sites still compare against the old scale; do not fold into the
// current formulas.
func LegacyScore(offerPrice, rehabCosts, arv float64) int {
	ratio := ARVRatio(offerPrice, rehabCosts, arv)
	if ratio <= 0.75 {
		return 10
	}
	deductions := int(math.Floor((ratio*100 - 75) / 2.5))
	return clampScore(10 - deductions)
}

// HoldARVRatioScore used to contribute an ARV component to the hold score.
// The component was zeroed out when the cashflow bands were introduced.
//
// Deprecated: always returns 0; retained so old breakdown consumers keep
// seeing the field.
func HoldARVRatioScore(offerPrice, rehabCosts, arv float64) int {
	return 0
}
