package opmetrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rentfolio/rentfolio-api/internal/models"
)

func nowAug31() time.Time {
	return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
}

func unitWithStatus(status string, rent float64, since time.Time) models.PropertyUnit {
	u := models.PropertyUnit{Rent: rent, Status: status}
	if !since.IsZero() {
		u.StatusHistory = []models.UnitStatusHistory{{Status: status, DateStart: since}}
	}
	return u
}

func TestDaysSinceStatusChange(t *testing.T) {
	now := nowAug31()

	assert.Equal(t, 0, DaysSinceStatusChange(time.Time{}, now), "no history means no age")
	assert.Equal(t, 0, DaysSinceStatusChange(now, now))
	assert.Equal(t, 0, DaysSinceStatusChange(now.Add(time.Hour), now))
	assert.Equal(t, 1, DaysSinceStatusChange(now.Add(-6*time.Hour), now), "partial days round up")
	assert.Equal(t, 10, DaysSinceStatusChange(now.AddDate(0, 0, -10), now))
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0, OccupancyRate(nil))

	units := []models.PropertyUnit{
		{Status: models.UnitStatusOccupied},
		{Status: models.UnitStatusOccupied},
		{Status: models.UnitStatusBehindRent},
		{Status: models.UnitStatusOccupied},
		{Status: models.UnitStatusVacant},
	}
	assert.Equal(t, 80, OccupancyRate(units), "behind-on-rent still counts as occupied")

	assert.Equal(t, 33, OccupancyRate([]models.PropertyUnit{
		{Status: models.UnitStatusOccupied},
		{Status: models.UnitStatusVacant},
		{Status: models.UnitStatusVacant},
	}))
}

func TestVacantUnits_SortedLongestFirst(t *testing.T) {
	now := nowAug31()
	units := []models.PropertyUnit{
		unitWithStatus(models.UnitStatusVacant, 900, now.AddDate(0, 0, -5)),
		unitWithStatus(models.UnitStatusOccupied, 1100, now.AddDate(0, 0, -300)),
		unitWithStatus(models.UnitStatusVacant, 950, now.AddDate(0, 0, -45)),
	}
	alerts := VacantUnits(units, now)

	assert.Len(t, alerts, 2)
	assert.Equal(t, 3, alerts[0].UnitNumber)
	assert.Equal(t, 45, alerts[0].DaysInStatus)
	assert.Equal(t, 1, alerts[1].UnitNumber)
	assert.Equal(t, 5, alerts[1].DaysInStatus)
	assert.Zero(t, alerts[0].AmountOwed, "vacancy owes nothing")
}

func TestDelinquentUnits_AmountOwedAccruesPerCycle(t *testing.T) {
	now := nowAug31()
	cfg := DefaultConfig()
	units := []models.PropertyUnit{
		unitWithStatus(models.UnitStatusBehindRent, 1200, now.AddDate(0, 0, -65)),
		unitWithStatus(models.UnitStatusBehindRent, 800, now.AddDate(0, 0, -29)),
		unitWithStatus(models.UnitStatusOccupied, 1000, now.AddDate(0, 0, -400)),
	}
	alerts := cfg.DelinquentUnits(units, now)

	assert.Len(t, alerts, 2)
	// 65 days is two full 30-day cycles.
	assert.Equal(t, 1, alerts[0].UnitNumber)
	assert.Equal(t, 2400.0, alerts[0].AmountOwed)
	// 29 days has not completed a cycle yet.
	assert.Equal(t, 2, alerts[1].UnitNumber)
	assert.Zero(t, alerts[1].AmountOwed)
}

func TestDelinquentUnits_NoHistory(t *testing.T) {
	cfg := DefaultConfig()
	units := []models.PropertyUnit{
		unitWithStatus(models.UnitStatusBehindRent, 1200, time.Time{}),
	}
	alerts := cfg.DelinquentUnits(units, nowAug31())

	assert.Len(t, alerts, 1)
	assert.Zero(t, alerts[0].DaysInStatus)
	assert.Zero(t, alerts[0].AmountOwed)
}

func TestConsecutiveMonthsWithLosses(t *testing.T) {
	series := []models.MonthlyPLData{
		{Month: "2026-04", NetIncome: 50},
		{Month: "2026-05", NetIncome: -50},
		{Month: "2026-06", NetIncome: -100},
		{Month: "2026-07", NetIncome: -75},
	}
	assert.Equal(t, 3, ConsecutiveMonthsWithLosses(series))

	assert.Equal(t, 0, ConsecutiveMonthsWithLosses(nil))
	assert.Equal(t, 0, ConsecutiveMonthsWithLosses([]models.MonthlyPLData{{NetIncome: 0}}))
	assert.Equal(t, 2, ConsecutiveMonthsWithLosses([]models.MonthlyPLData{
		{NetIncome: -10}, {NetIncome: -10},
	}))
}

func TestTopExpenseCategories(t *testing.T) {
	series := []models.MonthlyPLData{
		{
			Month:              "2026-06",
			ExpensesByCategory: map[string]float64{"Repairs": 450, "Utilities": 80, "Insurance": 120, "Landscaping": 60},
		},
		{Month: "2026-07", ExpensesByCategory: map[string]float64{}},
	}
	top := TopExpenseCategories(series, 3)

	// July had no expenses, so June is ranked.
	assert.Equal(t, []models.ExpenseCategoryTotal{
		{Category: "Repairs", Amount: 450},
		{Category: "Insurance", Amount: 120},
		{Category: "Utilities", Amount: 80},
	}, top)
}

func TestTopExpenseCategories_AlphabeticalTieBreak(t *testing.T) {
	series := []models.MonthlyPLData{
		{Month: "2026-07", ExpensesByCategory: map[string]float64{"Utilities": 100, "Insurance": 100}},
	}
	top := TopExpenseCategories(series, 3)

	assert.Equal(t, "Insurance", top[0].Category)
	assert.Equal(t, "Utilities", top[1].Category)
}

func TestTopExpenseCategories_IncomeOnlyMonth(t *testing.T) {
	series := []models.MonthlyPLData{
		{Month: "2026-06", ExpensesByCategory: map[string]float64{"Repairs": 450}},
		// July saw activity, just no spending; June does not leak through.
		{Month: "2026-07", IncomeByCategory: map[string]float64{"Rent": 1200}},
	}
	assert.Empty(t, TopExpenseCategories(series, 3))
}

func TestTopExpenseCategories_AllEmpty(t *testing.T) {
	// Empty, not nil, so the JSON surface shows [] rather than null.
	top := TopExpenseCategories([]models.MonthlyPLData{{Month: "2026-07"}}, 3)
	assert.NotNil(t, top)
	assert.Empty(t, top)

	top = TopExpenseCategories(nil, 3)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestUnitAlerts_EmptyNotNil(t *testing.T) {
	now := nowAug31()
	units := []models.PropertyUnit{
		unitWithStatus(models.UnitStatusOccupied, 1100, now.AddDate(0, 0, -90)),
	}

	vacant := VacantUnits(units, now)
	assert.NotNil(t, vacant)
	assert.Empty(t, vacant)

	delinquent := DefaultConfig().DelinquentUnits(units, now)
	assert.NotNil(t, delinquent)
	assert.Empty(t, delinquent)
}

func TestLastMonthSnapshot_FallsBackToWindowEdge(t *testing.T) {
	series := []models.MonthlyPLData{
		{Month: "2026-06", TotalIncome: 1200, IncomeByCategory: map[string]float64{"Rent": 1200}},
		{Month: "2026-07"},
	}
	m := lastMonthSnapshot(series)
	if assert.NotNil(t, m) {
		assert.Equal(t, "2026-06", m.Month)
	}

	empty := []models.MonthlyPLData{{Month: "2026-06"}, {Month: "2026-07"}}
	m = lastMonthSnapshot(empty)
	if assert.NotNil(t, m) {
		assert.Equal(t, "2026-07", m.Month)
	}

	assert.Nil(t, lastMonthSnapshot(nil))
}

func TestCalculate(t *testing.T) {
	now := nowAug31()
	property := &models.Property{
		ID:      1,
		Address: "12 Oak St",
		Status:  models.PropertyStatusRented,
		PropertyUnits: []models.PropertyUnit{
			unitWithStatus(models.UnitStatusOccupied, 1100, now.AddDate(0, -8, 0)),
			unitWithStatus(models.UnitStatusVacant, 950, now.AddDate(0, 0, -45)),
			unitWithStatus(models.UnitStatusBehindRent, 1200, now.AddDate(0, 0, -65)),
		},
	}
	report := &models.PropertyPLReport{
		Months: []models.MonthlyPLData{
			{Month: "2026-06", NetIncome: 300, ExpensesByCategory: map[string]float64{"Repairs": 450}, TotalExpenses: 450},
			{Month: "2026-07", NetIncome: -75, ExpensesByCategory: map[string]float64{"Utilities": 80}, TotalExpenses: 80},
			{Month: "2026-08", NetIncome: -120, ExpensesByCategory: map[string]float64{"Repairs": 200}, TotalExpenses: 200},
		},
	}

	m := DefaultConfig().Calculate(property, report, now)

	assert.Equal(t, 67, m.OccupancyRate)
	assert.Len(t, m.VacantUnits, 1)
	assert.Len(t, m.DelinquentUnits, 1)
	assert.Equal(t, 2400.0, m.DelinquentUnits[0].AmountOwed)
	assert.Equal(t, 2, m.ConsecutiveMonthsWithLoss)
	assert.Equal(t, "Repairs", m.TopExpenseCategories[0].Category)
	assert.Equal(t, "2026-08", m.LastMonth.Month)
	assert.Equal(t, 2300.0, m.TotalMonthlyRent, "vacant rent drops out")
	assert.Equal(t, 3250.0, m.PotentialMonthlyRent)
}
