package scoring

import "math"

// MonthlyPayment computes the standard fixed-rate amortized payment
// M = P*r*(1+r)^n / ((1+r)^n - 1), with r the monthly rate and n the term
// in months. Non-positive principals yield 0.
func MonthlyPayment(principal, annualRate float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}
	n := float64(termYears * 12)
	r := annualRate / 12
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// MonthlyMortgagePayment applies the configured rate and term.
func (c Config) MonthlyMortgagePayment(principal float64) float64 {
	return MonthlyPayment(principal, c.AnnualInterestRate, c.LoanTermYears)
}
