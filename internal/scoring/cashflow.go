package scoring

// MonthlyCashflow is rent minus management, taxes, reserves and the
// mortgage payment on the acquisition loan. Management is a fraction of
// rent, taxes a monthly fraction of ARV; both come from the Config, not
// from literals.
func (c Config) MonthlyCashflow(p PropertyFinancials) float64 {
	income := p.PotentialRent
	management := c.ManagementRate * income
	taxes := c.AnnualTaxRate * p.ARV / 12
	mortgage := c.MonthlyMortgagePayment(c.LoanAmount(p.OfferPrice, p.RehabCosts))
	return income - (management + taxes + c.MonthlyReserves + mortgage)
}

// CashflowPerUnit spreads the monthly cashflow across rentable units.
func (c Config) CashflowPerUnit(p PropertyFinancials) float64 {
	return c.MonthlyCashflow(p) / float64(p.UnitCount())
}
