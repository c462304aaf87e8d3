package models

// BusinessPropertyID labels the synthetic breakdown that collects
// transactions not tied to any property
const BusinessPropertyID = "business"

// MonthlyPLData holds one calendar month of profit and loss, with income
// and operating expenses broken out by category
type MonthlyPLData struct {
	Month              string             `json:"month"`
	IncomeByCategory   map[string]float64 `json:"income_by_category"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
	TotalIncome        float64            `json:"total_income"`
	TotalExpenses      float64            `json:"total_expenses"`
	NetIncome          float64            `json:"net_income"`
}

// IsEmpty returns true when the month had no activity
func (m *MonthlyPLData) IsEmpty() bool {
	return len(m.IncomeByCategory) == 0 && len(m.ExpensesByCategory) == 0
}

// PLSummary aggregates a reporting window: totals across every month
// plus per-month averages over the full window, empty months included
type PLSummary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetIncome        float64 `json:"net_income"`
	AverageIncome    float64 `json:"average_income"`
	AverageExpenses  float64 `json:"average_expenses"`
	AverageNetIncome float64 `json:"average_net_income"`
}

// PropertyPLReport is the monthly P&L series for a single property
type PropertyPLReport struct {
	PropertyID    string          `json:"property_id"`
	Address       string          `json:"address"`
	Months        []MonthlyPLData `json:"months"`
	Summary       PLSummary       `json:"summary"`
	LastFullMonth *MonthlyPLData  `json:"last_full_month,omitempty"`
}

// PropertyBreakdown is one property's line in a portfolio report,
// carrying both full-window totals and last-full-month totals
type PropertyBreakdown struct {
	PropertyID        string  `json:"property_id"`
	Address           string  `json:"address"`
	TotalIncome       float64 `json:"total_income"`
	TotalExpenses     float64 `json:"total_expenses"`
	NetIncome         float64 `json:"net_income"`
	LastMonthIncome   float64 `json:"last_month_income"`
	LastMonthExpenses float64 `json:"last_month_expenses"`
	LastMonthNet      float64 `json:"last_month_net"`
}

// PortfolioPLReport rolls every operating property plus business-level
// entries into one report
type PortfolioPLReport struct {
	Months     []MonthlyPLData     `json:"months"`
	Summary    PLSummary           `json:"summary"`
	Breakdowns []PropertyBreakdown `json:"breakdowns"`
}
