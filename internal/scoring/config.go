package scoring

// Config holds every policy constant of the scoring and financing model.
// The defaults mirror the house underwriting policy; tests override single
// fields to exercise formulas independently of policy.
type Config struct {
	// Acquisition financing
	DownPaymentRate float64 // fraction of total investment paid down
	LoanRate        float64 // fraction of total investment financed
	CashBuffer      float64 // cash to keep on hand after refinance

	// Flat refinance policy (the alternative financing model)
	RefinanceLTV float64 // loan-to-ARV ratio for a straight refinance

	// Mortgage
	AnnualInterestRate float64
	LoanTermYears      int

	// Operating cost model
	ManagementRate  float64 // fraction of monthly rent paid to management
	AnnualTaxRate   float64 // fraction of ARV, billed monthly
	MonthlyReserves float64 // flat maintenance/capex reserve per month
}

// DefaultConfig returns the standard underwriting policy.
func DefaultConfig() Config {
	return Config{
		DownPaymentRate:    0.25,
		LoanRate:           0.75,
		CashBuffer:         20000,
		RefinanceLTV:       0.75,
		AnnualInterestRate: 0.07,
		LoanTermYears:      30,
		ManagementRate:     0.10,
		AnnualTaxRate:      0.015,
		MonthlyReserves:    75,
	}
}

// PropertyFinancials carries the purchase-side attributes a score is
// computed from. It deliberately knows nothing about persistence.
type PropertyFinancials struct {
	OfferPrice    float64
	RehabCosts    float64
	PotentialRent float64
	ARV           float64
	Units         int // 0 or negative means a single unit
}

// UnitCount returns the effective number of rentable units.
func (p PropertyFinancials) UnitCount() int {
	if p.Units <= 0 {
		return 1
	}
	return p.Units
}

// TotalInvestment is the all-in acquisition cost.
func (p PropertyFinancials) TotalInvestment() float64 {
	return p.OfferPrice + p.RehabCosts
}
