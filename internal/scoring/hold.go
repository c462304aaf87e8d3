package scoring

import "math"

// Hold score band edges. The cashflow bands step $25 per point from $50 up
// to the $200/unit top band; the rent-ratio bonus rewards the 1% rule.
const (
	topCashflowPerUnit = 200
	topRentRatio       = 0.01
	goodRentRatio      = 0.008
)

// HoldBreakdown itemizes a hold score.
type HoldBreakdown struct {
	CashflowScore  int `json:"cashflow_score"`
	RentRatioScore int `json:"rent_ratio_score"`
	TotalScore     int `json:"total_score"`
}

// CashflowScore maps monthly cashflow per unit onto a 0-8 band.
func CashflowScore(cashflowPerUnit float64) int {
	switch {
	case cashflowPerUnit >= topCashflowPerUnit:
		return 8
	case cashflowPerUnit >= 175:
		return 7
	case cashflowPerUnit >= 150:
		return 6
	case cashflowPerUnit >= 125:
		return 5
	case cashflowPerUnit >= 100:
		return 4
	case cashflowPerUnit >= 75:
		return 3
	case cashflowPerUnit >= 50:
		return 2
	case cashflowPerUnit >= 0:
		return 1
	default:
		return 0
	}
}

// RentRatioScore maps the rent ratio onto a 0-2 bonus.
func RentRatioScore(ratio float64) int {
	switch {
	case ratio >= topRentRatio:
		return 2
	case ratio >= goodRentRatio:
		return 1
	default:
		return 0
	}
}

// HoldScore rates a property 1-10 as a long-term rental.
func (c Config) HoldScore(p PropertyFinancials) int {
	return c.HoldScoreBreakdown(p).TotalScore
}

// HoldScoreBreakdown returns the hold score with its sub-scores.
func (c Config) HoldScoreBreakdown(p PropertyFinancials) HoldBreakdown {
	cashflow := CashflowScore(c.CashflowPerUnit(p))
	ratio := RentRatioScore(RentRatio(p.PotentialRent, p.OfferPrice, p.RehabCosts))
	return HoldBreakdown{
		CashflowScore:  cashflow,
		RentRatioScore: ratio,
		TotalScore:     clampScore(cashflow + ratio),
	}
}

// PerfectRentForHoldScore returns the minimum monthly rent that scores a 10
// for the given purchase terms. The result is rounded up to the next cent so
// feeding it back through HoldScore lands exactly in the top bands.
func (c Config) PerfectRentForHoldScore(offerPrice, rehabCosts, arv float64, units int) float64 {
	if units <= 0 {
		units = 1
	}

	// Rent needed for the full cashflow band: solve
	// rent*(1-mgmt) - fixed >= topCashflow*units for rent.
	taxes := c.AnnualTaxRate * arv / 12
	mortgage := c.MonthlyMortgagePayment(c.LoanAmount(offerPrice, rehabCosts))
	fixed := taxes + c.MonthlyReserves + mortgage
	rentForCashflow := (topCashflowPerUnit*float64(units) + fixed) / (1 - c.ManagementRate)

	// Rent needed for the full rent-ratio bonus.
	rentForRatio := topRentRatio * (offerPrice + rehabCosts)

	return roundUpCent(math.Max(rentForCashflow, rentForRatio))
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func roundUpCent(v float64) float64 {
	return math.Ceil(v*100) / 100
}
