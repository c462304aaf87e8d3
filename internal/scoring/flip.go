package scoring

import "math"

// Flip score band edges. A deal at or under 65% of ARV scores the full 10;
// every full 3.5 percentage points above that costs one point.
const (
	topARVRatio      = 0.65
	arvDeductionStep = 3.5 // percentage points per deducted point

	topEquity  = 75000
	goodEquity = 60000
)

// FlipBreakdown itemizes a flip score.
type FlipBreakdown struct {
	ARVRatioScore int `json:"arv_ratio_score"`
	EquityScore   int `json:"equity_score"`
	TotalScore    int `json:"total_score"`
}

// ARVRatioScore maps the investment-to-ARV ratio onto a 0-10 band.
func ARVRatioScore(ratio float64) int {
	if ratio <= topARVRatio {
		return 10
	}
	deductions := int(math.Floor((ratio*100 - topARVRatio*100) / arvDeductionStep))
	score := 10 - deductions
	if score < 0 {
		return 0
	}
	return score
}

// EquityScore maps post-refinance equity onto a 0-2 bonus.
func EquityScore(equity float64) int {
	switch {
	case equity >= topEquity:
		return 2
	case equity >= goodEquity:
		return 1
	default:
		return 0
	}
}

// FlipScore rates a property 1-10 as a resale candidate.
func (c Config) FlipScore(p PropertyFinancials) int {
	return c.FlipScoreBreakdown(p).TotalScore
}

// FlipScoreBreakdown returns the flip score with its sub-scores.
func (c Config) FlipScoreBreakdown(p PropertyFinancials) FlipBreakdown {
	ratio := ARVRatioScore(ARVRatio(p.OfferPrice, p.RehabCosts, p.ARV))
	equity := EquityScore(c.HomeEquity(p.OfferPrice, p.RehabCosts, p.ARV))
	return FlipBreakdown{
		ARVRatioScore: ratio,
		EquityScore:   equity,
		TotalScore:    clampScore(ratio + equity),
	}
}

// PerfectARVForFlipScore returns the lowest after-repair value at which the
// given purchase terms still score a 10, i.e. the ARV that puts the deal
// right at the top ratio band. Rounded up to the next cent so the round trip
// through FlipScore holds.
func (c Config) PerfectARVForFlipScore(offerPrice, rehabCosts float64) float64 {
	total := offerPrice + rehabCosts
	if total <= 0 {
		return 0
	}
	return roundUpCent(total / topARVRatio)
}
