package scoring

// The buffer-driven model sizes the post-refinance loan so the investor gets
// their down payment back minus a fixed cash buffer. The flat refinance model
// below lends a straight percentage of ARV. They are distinct policies and
// are kept separate.

// DownPayment is the cash put down on acquisition.
func (c Config) DownPayment(offerPrice, rehabCosts float64) float64 {
	return c.DownPaymentRate * (offerPrice + rehabCosts)
}

// LoanAmount is the financed part of the acquisition.
func (c Config) LoanAmount(offerPrice, rehabCosts float64) float64 {
	return c.LoanRate * (offerPrice + rehabCosts)
}

// NewLoan is the post-refinance balance needed to return the down payment
// while leaving the configured cash buffer invested.
func (c Config) NewLoan(offerPrice, rehabCosts float64) float64 {
	return c.LoanAmount(offerPrice, rehabCosts) + c.CashToPullOut(offerPrice, rehabCosts)
}

// NewLoanPercentOfARV relates the buffer-driven loan to the after-repair
// value. A zero ARV yields 0.
func (c Config) NewLoanPercentOfARV(offerPrice, rehabCosts, arv float64) float64 {
	if arv == 0 {
		return 0
	}
	return c.NewLoan(offerPrice, rehabCosts) / arv
}

// CashToPullOut is the refinance proceeds returned to the investor.
func (c Config) CashToPullOut(offerPrice, rehabCosts float64) float64 {
	return c.DownPayment(offerPrice, rehabCosts) - c.CashBuffer
}

// HomeEquity is the value left in the property after the buffer-driven
// refinance.
func (c Config) HomeEquity(offerPrice, rehabCosts, arv float64) float64 {
	return arv - c.NewLoan(offerPrice, rehabCosts)
}

// RefinanceLoan is the flat LTV refinance balance.
func (c Config) RefinanceLoan(arv float64) float64 {
	return c.RefinanceLTV * arv
}

// RefinanceEquity is the equity remaining under the flat LTV policy.
func (c Config) RefinanceEquity(arv float64) float64 {
	return arv - c.RefinanceLoan(arv)
}

// RefinanceCashOut is the cash released when the flat LTV loan replaces the
// acquisition loan.
func (c Config) RefinanceCashOut(offerPrice, rehabCosts, arv float64) float64 {
	return c.RefinanceLoan(arv) - c.LoanAmount(offerPrice, rehabCosts)
}
