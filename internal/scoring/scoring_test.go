package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatioGuards_ZeroDenominators(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.0, RentRatio(1500, 0, 0), "zero investment must not divide")
	assert.Equal(t, 0.0, ARVRatio(100000, 20000, 0), "zero ARV must not divide")
	assert.Equal(t, 0.0, cfg.NewLoanPercentOfARV(100000, 20000, 0))
}

func TestRentRatio(t *testing.T) {
	assert.InDelta(t, 0.01, RentRatio(1200, 100000, 20000), 1e-12)
	assert.InDelta(t, 0.008, RentRatio(800, 80000, 20000), 1e-12)
}

func TestFinancingModel(t *testing.T) {
	cfg := DefaultConfig()

	// 120k all-in: 30k down, 90k financed, pull out 10k over the buffer.
	assert.InDelta(t, 30000, cfg.DownPayment(100000, 20000), 1e-9)
	assert.InDelta(t, 90000, cfg.LoanAmount(100000, 20000), 1e-9)
	assert.InDelta(t, 10000, cfg.CashToPullOut(100000, 20000), 1e-9)
	assert.InDelta(t, 100000, cfg.NewLoan(100000, 20000), 1e-9)
	assert.InDelta(t, 60000, cfg.HomeEquity(100000, 20000, 160000), 1e-9)
	assert.InDelta(t, 0.625, cfg.NewLoanPercentOfARV(100000, 20000, 160000), 1e-12)
}

func TestFlatRefinanceModelStaysSeparate(t *testing.T) {
	cfg := DefaultConfig()

	// Flat 75%-of-ARV policy, independent of the buffer-driven NewLoan.
	assert.InDelta(t, 120000, cfg.RefinanceLoan(160000), 1e-9)
	assert.InDelta(t, 40000, cfg.RefinanceEquity(160000), 1e-9)
	assert.InDelta(t, 30000, cfg.RefinanceCashOut(100000, 20000, 160000), 1e-9)
	assert.NotEqual(t, cfg.NewLoan(100000, 20000), cfg.RefinanceLoan(160000))
}

func TestMonthlyPayment_ReferenceValues(t *testing.T) {
	// Standard amortization reference: 100k at 7% over 30 years.
	assert.InDelta(t, 665.30, MonthlyPayment(100000, 0.07, 30), 0.01)
	assert.InDelta(t, 1330.60, MonthlyPayment(200000, 0.07, 30), 0.01)
	// 150k at 4.5% over 15 years.
	assert.InDelta(t, 1147.49, MonthlyPayment(150000, 0.045, 15), 0.01)
}

func TestMonthlyPayment_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, MonthlyPayment(0, 0.07, 30))
	assert.Equal(t, 0.0, MonthlyPayment(-5000, 0.07, 30))
	assert.Equal(t, 0.0, MonthlyPayment(100000, 0.07, 0))
	// Zero-rate loans amortize linearly.
	assert.InDelta(t, 1000, MonthlyPayment(120000, 0, 10), 1e-9)
}

func TestCashflowScore_Bands(t *testing.T) {
	cases := []struct {
		perUnit float64
		want    int
	}{
		{250, 8}, {200, 8}, {199.99, 7}, {175, 7}, {150, 6}, {125, 5},
		{100, 4}, {75, 3}, {50, 2}, {49.99, 1}, {0, 1}, {-0.01, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CashflowScore(tc.perUnit), "cashflow %.2f", tc.perUnit)
	}
}

func TestRentRatioScore_Bands(t *testing.T) {
	assert.Equal(t, 2, RentRatioScore(0.012))
	assert.Equal(t, 2, RentRatioScore(0.01))
	assert.Equal(t, 1, RentRatioScore(0.009))
	assert.Equal(t, 1, RentRatioScore(0.008))
	assert.Equal(t, 0, RentRatioScore(0.0079))
	assert.Equal(t, 0, RentRatioScore(0))
}

func TestARVRatioScore_Bands(t *testing.T) {
	assert.Equal(t, 10, ARVRatioScore(0.65))
	assert.Equal(t, 10, ARVRatioScore(0.50))
	// Two full 3.5pp steps above 65%.
	assert.Equal(t, 8, ARVRatioScore(0.72))
	assert.Equal(t, 9, ARVRatioScore(0.66))
	assert.Equal(t, 0, ARVRatioScore(1.10))
}

func TestEquityScore_Bands(t *testing.T) {
	assert.Equal(t, 2, EquityScore(80000))
	assert.Equal(t, 2, EquityScore(75000))
	assert.Equal(t, 1, EquityScore(74999))
	assert.Equal(t, 1, EquityScore(60000))
	assert.Equal(t, 0, EquityScore(59999))
	assert.Equal(t, 0, EquityScore(-10000))
}

func TestScoreBounds(t *testing.T) {
	cfg := DefaultConfig()
	properties := []PropertyFinancials{
		{},
		{OfferPrice: 100000, RehabCosts: 20000, PotentialRent: 1500, ARV: 160000, Units: 1},
		{OfferPrice: 300000, RehabCosts: 100000, PotentialRent: 500, ARV: 150000, Units: 4},
		{OfferPrice: 50000, RehabCosts: 5000, PotentialRent: 2500, ARV: 200000},
		{OfferPrice: -100, RehabCosts: -50, PotentialRent: -10, ARV: -1000, Units: -3},
	}
	for _, p := range properties {
		hold := cfg.HoldScore(p)
		flip := cfg.FlipScore(p)
		assert.GreaterOrEqual(t, hold, 1)
		assert.LessOrEqual(t, hold, 10)
		assert.GreaterOrEqual(t, flip, 1)
		assert.LessOrEqual(t, flip, 10)
	}
}

func TestHoldScore_MonotonicInRent(t *testing.T) {
	cfg := DefaultConfig()
	p := PropertyFinancials{OfferPrice: 100000, RehabCosts: 20000, ARV: 160000, Units: 2}

	prev := 0
	for rent := 0.0; rent <= 5000; rent += 50 {
		p.PotentialRent = rent
		score := cfg.HoldScore(p)
		assert.GreaterOrEqual(t, score, prev, "hold score regressed at rent %.0f", rent)
		prev = score
	}
}

func TestFlipScore_MonotonicInARV(t *testing.T) {
	cfg := DefaultConfig()
	p := PropertyFinancials{OfferPrice: 100000, RehabCosts: 20000}

	prev := 0
	for arv := 100000.0; arv <= 400000; arv += 5000 {
		p.ARV = arv
		score := cfg.FlipScore(p)
		assert.GreaterOrEqual(t, score, prev, "flip score regressed at ARV %.0f", arv)
		prev = score
	}
}

func TestPerfectRentForHoldScore_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		offer, rehab, arv float64
		units             int
	}{
		{100000, 20000, 160000, 1},
		{100000, 20000, 160000, 0}, // units default to 1
		{250000, 50000, 400000, 4},
		{60000, 15000, 110000, 2},
		{0, 40000, 90000, 1},
	}
	for _, tc := range cases {
		rent := cfg.PerfectRentForHoldScore(tc.offer, tc.rehab, tc.arv, tc.units)
		p := PropertyFinancials{
			OfferPrice:    tc.offer,
			RehabCosts:    tc.rehab,
			PotentialRent: rent,
			ARV:           tc.arv,
			Units:         tc.units,
		}
		assert.Equal(t, 10, cfg.HoldScore(p),
			"perfect rent %.2f should score 10 for offer=%.0f rehab=%.0f", rent, tc.offer, tc.rehab)
	}
}

func TestPerfectRentForHoldScore_ScalesWithUnits(t *testing.T) {
	cfg := DefaultConfig()
	one := cfg.PerfectRentForHoldScore(100000, 20000, 160000, 1)
	four := cfg.PerfectRentForHoldScore(100000, 20000, 160000, 4)
	assert.Greater(t, four, one)
}

func TestPerfectARVForFlipScore_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct{ offer, rehab float64 }{
		{100000, 20000},
		{65000, 0},
		{250000, 75000},
		{33333, 11111},
	}
	for _, tc := range cases {
		arv := cfg.PerfectARVForFlipScore(tc.offer, tc.rehab)
		p := PropertyFinancials{OfferPrice: tc.offer, RehabCosts: tc.rehab, ARV: arv}
		assert.Equal(t, 10, cfg.FlipScore(p),
			"perfect ARV %.2f should score 10 for offer=%.0f rehab=%.0f", arv, tc.offer, tc.rehab)
	}
}

func TestPerfectARVForFlipScore_Degenerate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.0, cfg.PerfectARVForFlipScore(0, 0))
}

func TestHoldScoreBreakdown_SumsAndClamps(t *testing.T) {
	cfg := DefaultConfig()
	p := PropertyFinancials{OfferPrice: 100000, RehabCosts: 20000, ARV: 160000, Units: 1}
	p.PotentialRent = cfg.PerfectRentForHoldScore(p.OfferPrice, p.RehabCosts, p.ARV, p.Units)

	b := cfg.HoldScoreBreakdown(p)
	assert.Equal(t, 8, b.CashflowScore)
	assert.Equal(t, 2, b.RentRatioScore)
	assert.Equal(t, 10, b.TotalScore)

	// A hopeless rental still floors at 1.
	worst := cfg.HoldScoreBreakdown(PropertyFinancials{OfferPrice: 500000, RehabCosts: 100000, PotentialRent: 100, ARV: 400000})
	assert.Equal(t, 0, worst.CashflowScore)
	assert.Equal(t, 0, worst.RentRatioScore)
	assert.Equal(t, 1, worst.TotalScore)
}

func TestFlipScoreBreakdown(t *testing.T) {
	cfg := DefaultConfig()
	// 120k all-in on a 200k ARV: ratio 0.60, equity 100k.
	b := cfg.FlipScoreBreakdown(PropertyFinancials{OfferPrice: 100000, RehabCosts: 20000, ARV: 200000})
	assert.Equal(t, 10, b.ARVRatioScore)
	assert.Equal(t, 2, b.EquityScore)
	assert.Equal(t, 10, b.TotalScore, "clamp caps the sum at 10")
}

func TestLegacyScore(t *testing.T) {
	// 75% threshold, one point per 2.5pp above it.
	assert.Equal(t, 10, LegacyScore(75000, 0, 100000))
	assert.Equal(t, 8, LegacyScore(80000, 0, 100000))
	assert.Equal(t, 1, LegacyScore(150000, 0, 100000))
	assert.Equal(t, 10, LegacyScore(50000, 0, 0), "zero ARV guards to ratio 0")
}

func TestHoldARVRatioScore_AlwaysZero(t *testing.T) {
	assert.Equal(t, 0, HoldARVRatioScore(100000, 20000, 160000))
	assert.Equal(t, 0, HoldARVRatioScore(0, 0, 0))
}
