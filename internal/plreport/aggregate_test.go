package plreport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rentfolio/rentfolio-api/internal/models"
)

func uintPtr(v uint) *uint    { return &v }
func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func asOfJul15() time.Time {
	return time.Date(2026, time.July, 15, 10, 0, 0, 0, time.UTC)
}

func TestMonthWindow(t *testing.T) {
	keys := monthWindow(asOfJul15(), 6)
	assert.Equal(t, []string{"2026-02", "2026-03", "2026-04", "2026-05", "2026-06", "2026-07"}, keys)
}

func TestMonthWindow_CrossesYearBoundary(t *testing.T) {
	keys := monthWindow(time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), 4)
	assert.Equal(t, []string{"2025-11", "2025-12", "2026-01", "2026-02"}, keys)
}

func TestMonthWindow_DefaultsWindow(t *testing.T) {
	assert.Len(t, monthWindow(asOfJul15(), 0), DefaultWindowMonths)
	assert.Len(t, monthWindow(asOfJul15(), -3), DefaultWindowMonths)
}

func TestBucketKey(t *testing.T) {
	key, ok := bucketKey("2026-07-04")
	assert.True(t, ok)
	assert.Equal(t, "2026-07", key)

	_, ok = bucketKey("not-a-date")
	assert.False(t, ok)
	_, ok = bucketKey("2026-13-01")
	assert.False(t, ok)
	_, ok = bucketKey("")
	assert.False(t, ok)
}

func TestGeneratePropertyReport_ZeroFillsEmptyMonths(t *testing.T) {
	txns := []models.Transaction{
		{PropertyID: uintPtr(1), Date: "2026-07-01", Amount: 1200, Category: "Rent"},
	}
	report := GeneratePropertyReport(txns, 1, "12 Oak St", 6, asOfJul15())

	assert.Len(t, report.Months, 6)
	assert.Equal(t, "2026-02", report.Months[0].Month)
	assert.Equal(t, "2026-07", report.Months[5].Month)
	for _, m := range report.Months[:5] {
		assert.Zero(t, m.TotalIncome, "month %s should be empty", m.Month)
		assert.NotNil(t, m.IncomeByCategory)
		assert.NotNil(t, m.ExpensesByCategory)
	}
	assert.Equal(t, 1200.0, report.Months[5].TotalIncome)
}

func TestGeneratePropertyReport_CategoriesAndTotals(t *testing.T) {
	txns := []models.Transaction{
		{PropertyID: uintPtr(1), Date: "2026-06-01", Amount: 1200, Category: "Rent"},
		{PropertyID: uintPtr(1), Date: "2026-06-05", Amount: 50, Category: "Late Fees"},
		{PropertyID: uintPtr(1), Date: "2026-06-10", Amount: -300, Category: "Repairs"},
		{PropertyID: uintPtr(1), Date: "2026-06-20", Amount: -150, Category: "Repairs"},
		{PropertyID: uintPtr(1), Date: "2026-06-25", Amount: -80, Category: "Utilities"},
	}
	report := GeneratePropertyReport(txns, 1, "12 Oak St", 6, asOfJul15())

	june := report.Months[4]
	assert.Equal(t, "2026-06", june.Month)
	assert.Equal(t, 1250.0, june.TotalIncome)
	assert.Equal(t, 530.0, june.TotalExpenses)
	assert.Equal(t, 720.0, june.NetIncome)
	assert.Equal(t, 1200.0, june.IncomeByCategory["Rent"])
	assert.Equal(t, 50.0, june.IncomeByCategory["Late Fees"])
	assert.Equal(t, 450.0, june.ExpensesByCategory["Repairs"])
	assert.Equal(t, 80.0, june.ExpensesByCategory["Utilities"])

	assert.Equal(t, 720.0, report.Summary.NetIncome)
	assert.InDelta(t, 1250.0/6, report.Summary.AverageIncome, 1e-9)
	assert.InDelta(t, 530.0/6, report.Summary.AverageExpenses, 1e-9)
	assert.InDelta(t, 120.0, report.Summary.AverageNetIncome, 1e-9)
}

func TestGeneratePropertyReport_EmptyWindowSummary(t *testing.T) {
	report := GeneratePropertyReport(nil, 1, "12 Oak St", 6, asOfJul15())

	assert.Zero(t, report.Summary.TotalIncome)
	assert.Zero(t, report.Summary.TotalExpenses)
	assert.Zero(t, report.Summary.AverageIncome)
	assert.Zero(t, report.Summary.AverageExpenses)
	assert.Zero(t, report.Summary.AverageNetIncome)
}

func TestGeneratePropertyReport_OverrideDateWins(t *testing.T) {
	txns := []models.Transaction{
		{PropertyID: uintPtr(1), Date: "2026-07-02", OverrideDate: strPtr("2026-06-30"), Amount: 1200, Category: "Rent"},
	}
	report := GeneratePropertyReport(txns, 1, "12 Oak St", 6, asOfJul15())

	assert.Equal(t, 1200.0, report.Months[4].TotalIncome, "override moves the entry into June")
	assert.Zero(t, report.Months[5].TotalIncome)
}

func TestGeneratePropertyReport_SkipsCapitalAndMalformed(t *testing.T) {
	txns := []models.Transaction{
		{PropertyID: uintPtr(1), Date: "2026-06-01", Amount: -15000, Category: "Roof", ExpenseType: models.ExpenseTypeCapital},
		{PropertyID: uintPtr(1), Date: "June 1st", Amount: 1200, Category: "Rent"},
		{PropertyID: uintPtr(1), Date: "2026-06-02", Amount: 900, Category: "Rent"},
		// Only Operating (or legacy empty) types count toward P&L.
		{PropertyID: uintPtr(1), Date: "2026-06-03", Amount: -75, Category: "Escrow", ExpenseType: "Transfer"},
	}
	report := GeneratePropertyReport(txns, 1, "12 Oak St", 6, asOfJul15())

	june := report.Months[4]
	assert.Equal(t, 900.0, june.TotalIncome)
	assert.Zero(t, june.TotalExpenses)
}

func TestGeneratePropertyReport_IgnoresOtherPropertiesAndOutOfWindow(t *testing.T) {
	txns := []models.Transaction{
		{PropertyID: uintPtr(2), Date: "2026-06-01", Amount: 5000, Category: "Rent"},
		{PropertyID: nil, Date: "2026-06-01", Amount: 400, Category: "Interest"},
		{PropertyID: uintPtr(1), Date: "2025-12-01", Amount: 1200, Category: "Rent"},
		{PropertyID: uintPtr(1), Date: "2026-06-01", Amount: 1200, Category: "Rent"},
	}
	report := GeneratePropertyReport(txns, 1, "12 Oak St", 6, asOfJul15())

	assert.Equal(t, 1200.0, report.Summary.TotalIncome)
}

func TestGeneratePropertyReport_LastFullMonth(t *testing.T) {
	txns := []models.Transaction{
		{PropertyID: uintPtr(1), Date: "2026-06-01", Amount: 1200, Category: "Rent"},
		{PropertyID: uintPtr(1), Date: "2026-07-01", Amount: 1300, Category: "Rent"},
	}
	report := GeneratePropertyReport(txns, 1, "12 Oak St", 6, asOfJul15())

	if assert.NotNil(t, report.LastFullMonth) {
		assert.Equal(t, "2026-06", report.LastFullMonth.Month)
		assert.Equal(t, 1200.0, report.LastFullMonth.TotalIncome)
	}
}

func TestGeneratePropertyReport_LastFullMonthOutsideWindow(t *testing.T) {
	report := GeneratePropertyReport(nil, 1, "12 Oak St", 1, asOfJul15())
	assert.Nil(t, report.LastFullMonth, "a one-month window only covers the current month")
}

func portfolioFixture() ([]models.Transaction, []models.Property) {
	properties := []models.Property{
		{ID: 1, Address: "12 Oak St", Status: models.PropertyStatusRented, Units: intPtr(1)},
		{ID: 2, Address: "48 Elm Ave", Status: models.PropertyStatusRented, Units: intPtr(2)},
		{ID: 3, Address: "7 Pine Rd", Status: models.PropertyStatusRehab},
		{ID: 4, Address: "90 Birch Ln", Status: models.PropertyStatusRented, Archived: true},
		{ID: 5, Address: "3 Cedar Ct", Status: models.PropertyStatusOpportunity},
	}
	txns := []models.Transaction{
		{PropertyID: uintPtr(1), Date: "2026-06-01", Amount: 1200, Category: "Rent"},
		{PropertyID: uintPtr(1), Date: "2026-06-10", Amount: -200, Category: "Repairs"},
		{PropertyID: uintPtr(2), Date: "2026-06-01", Amount: 2200, Category: "Rent"},
		{PropertyID: uintPtr(2), Date: "2026-06-15", Amount: -900, Category: "Repairs"},
		{PropertyID: uintPtr(3), Date: "2026-06-20", Amount: -5000, Category: "Rehab"},
		{PropertyID: uintPtr(4), Date: "2026-06-01", Amount: 800, Category: "Rent"},
		{PropertyID: uintPtr(5), Date: "2026-06-05", Amount: -350, Category: "Inspection"},
		{PropertyID: nil, Date: "2026-06-03", Amount: -120, Category: "Software"},
	}
	return txns, properties
}

func TestGeneratePortfolioReport_ExcludesPreAcquisitionAndArchived(t *testing.T) {
	txns, properties := portfolioFixture()
	report := GeneratePortfolioReport(txns, properties, 6, asOfJul15())

	assert.Equal(t, 3400.0, report.Summary.TotalIncome, "under-offer and archived entries stay out")
	assert.Equal(t, 6220.0, report.Summary.TotalExpenses)
	assert.Len(t, report.Breakdowns, 4)
}

func TestGeneratePortfolioReport_IncludesRehabSpend(t *testing.T) {
	txns, properties := portfolioFixture()
	report := GeneratePortfolioReport(txns, properties, 6, asOfJul15())

	var pine *models.PropertyBreakdown
	for i := range report.Breakdowns {
		if report.Breakdowns[i].Address == "7 Pine Rd" {
			pine = &report.Breakdowns[i]
		}
	}
	if assert.NotNil(t, pine, "a property under rehab is owned and reported") {
		assert.Equal(t, 5000.0, pine.TotalExpenses)
		assert.Equal(t, -5000.0, pine.NetIncome)
	}
}

func TestGeneratePortfolioReport_BusinessBreakdown(t *testing.T) {
	txns, properties := portfolioFixture()
	report := GeneratePortfolioReport(txns, properties, 6, asOfJul15())

	var business *models.PropertyBreakdown
	for i := range report.Breakdowns {
		if report.Breakdowns[i].PropertyID == models.BusinessPropertyID {
			business = &report.Breakdowns[i]
		}
	}
	if assert.NotNil(t, business) {
		assert.Equal(t, -120.0, business.NetIncome)
	}
}

func TestGeneratePortfolioReport_BreakdownLastMonthTotals(t *testing.T) {
	txns, properties := portfolioFixture()
	// May activity counts toward the window totals but not the last full
	// month (June).
	txns = append(txns, models.Transaction{PropertyID: uintPtr(1), Date: "2026-05-02", Amount: 1200, Category: "Rent"})
	report := GeneratePortfolioReport(txns, properties, 6, asOfJul15())

	var oak *models.PropertyBreakdown
	for i := range report.Breakdowns {
		if report.Breakdowns[i].Address == "12 Oak St" {
			oak = &report.Breakdowns[i]
		}
	}
	if assert.NotNil(t, oak) {
		assert.Equal(t, 2400.0, oak.TotalIncome)
		assert.Equal(t, 2200.0, oak.NetIncome)
		assert.Equal(t, 1200.0, oak.LastMonthIncome)
		assert.Equal(t, 200.0, oak.LastMonthExpenses)
		assert.Equal(t, 1000.0, oak.LastMonthNet)
	}
}

func TestGeneratePortfolioReport_BreakdownsSortedByNetIncome(t *testing.T) {
	txns, properties := portfolioFixture()
	report := GeneratePortfolioReport(txns, properties, 6, asOfJul15())

	// Elm nets 1300, Oak nets 1000, business nets -120, Pine nets -5000.
	assert.Equal(t, "48 Elm Ave", report.Breakdowns[0].Address)
	assert.Equal(t, "12 Oak St", report.Breakdowns[1].Address)
	assert.Equal(t, models.BusinessPropertyID, report.Breakdowns[2].PropertyID)
	assert.Equal(t, "7 Pine Rd", report.Breakdowns[3].Address)
}

func TestGeneratePortfolioReport_TiesBreakByAddress(t *testing.T) {
	properties := []models.Property{
		{ID: 1, Address: "B St", Status: models.PropertyStatusRented},
		{ID: 2, Address: "A St", Status: models.PropertyStatusRented},
	}
	txns := []models.Transaction{
		{PropertyID: uintPtr(1), Date: "2026-06-01", Amount: 1000, Category: "Rent"},
		{PropertyID: uintPtr(2), Date: "2026-06-01", Amount: 1000, Category: "Rent"},
	}
	report := GeneratePortfolioReport(txns, properties, 6, asOfJul15())

	assert.Equal(t, "A St", report.Breakdowns[0].Address)
	assert.Equal(t, "B St", report.Breakdowns[1].Address)
}
