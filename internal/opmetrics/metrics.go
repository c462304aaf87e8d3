// Package opmetrics computes operational health metrics for rented
// properties: occupancy, unit alerts, loss streaks and expense hot spots.
package opmetrics

import (
	"math"
	"sort"
	"time"

	"github.com/rentfolio/rentfolio-api/internal/models"
)

// Config tunes the analyzer thresholds.
type Config struct {
	TopExpenseCategories int
	DelinquencyCycleDays int
}

// DefaultConfig returns the thresholds used in production.
func DefaultConfig() Config {
	return Config{
		TopExpenseCategories: 3,
		DelinquencyCycleDays: 30,
	}
}

// DaysSinceStatusChange returns whole days between the status start and
// now, rounding any partial day up. Units with no recorded history
// report 0.
func DaysSinceStatusChange(since, now time.Time) int {
	if since.IsZero() || !now.After(since) {
		return 0
	}
	return int(math.Ceil(now.Sub(since).Hours() / 24))
}

// OccupancyRate returns the percentage of units not vacant, rounded to
// the nearest whole point. Properties with no units report 0.
func OccupancyRate(units []models.PropertyUnit) int {
	if len(units) == 0 {
		return 0
	}
	occupied := 0
	for i := range units {
		if !units[i].IsVacant() {
			occupied++
		}
	}
	return int(math.Round(float64(occupied) / float64(len(units)) * 100))
}

// VacantUnits lists vacant units as alerts, longest vacant first. Unit
// numbers are 1-based positions within the property.
func VacantUnits(units []models.PropertyUnit, now time.Time) []models.UnitAlert {
	alerts := []models.UnitAlert{}
	for i := range units {
		u := &units[i]
		if !u.IsVacant() {
			continue
		}
		alerts = append(alerts, models.UnitAlert{
			UnitNumber:   i + 1,
			Rent:         u.Rent,
			Status:       u.Status,
			DaysInStatus: DaysSinceStatusChange(u.CurrentStatusSince(), now),
		})
	}
	sortAlerts(alerts)
	return alerts
}

// DelinquentUnits lists units behind on rent, longest delinquent first.
// Amount owed accrues one full rent cycle per cycleDays elapsed.
func (c Config) DelinquentUnits(units []models.PropertyUnit, now time.Time) []models.UnitAlert {
	cycle := c.DelinquencyCycleDays
	if cycle <= 0 {
		cycle = 30
	}
	alerts := []models.UnitAlert{}
	for i := range units {
		u := &units[i]
		if !u.IsDelinquent() {
			continue
		}
		days := DaysSinceStatusChange(u.CurrentStatusSince(), now)
		alerts = append(alerts, models.UnitAlert{
			UnitNumber:   i + 1,
			Rent:         u.Rent,
			Status:       u.Status,
			DaysInStatus: days,
			AmountOwed:   u.Rent * float64(days/cycle),
		})
	}
	sortAlerts(alerts)
	return alerts
}

func sortAlerts(alerts []models.UnitAlert) {
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].DaysInStatus != alerts[j].DaysInStatus {
			return alerts[i].DaysInStatus > alerts[j].DaysInStatus
		}
		return alerts[i].UnitNumber < alerts[j].UnitNumber
	})
}

// ConsecutiveMonthsWithLosses counts negative-net months from the most
// recent month backward, stopping at the first break-even or profitable
// month.
func ConsecutiveMonthsWithLosses(series []models.MonthlyPLData) int {
	streak := 0
	for i := len(series) - 1; i >= 0; i-- {
		if series[i].NetIncome >= 0 {
			break
		}
		streak++
	}
	return streak
}

// TopExpenseCategories ranks spend in the most recent month that had any
// activity, largest first with alphabetical tie-breaks, keeping at most n.
// A month with income but no expenses yields an empty result. The result
// is never nil so it serializes as a JSON array.
func TopExpenseCategories(series []models.MonthlyPLData, n int) []models.ExpenseCategoryTotal {
	for i := len(series) - 1; i >= 0; i-- {
		if series[i].IsEmpty() {
			continue
		}
		totals := make([]models.ExpenseCategoryTotal, 0, len(series[i].ExpensesByCategory))
		for cat, amount := range series[i].ExpensesByCategory {
			totals = append(totals, models.ExpenseCategoryTotal{Category: cat, Amount: amount})
		}
		sort.Slice(totals, func(a, b int) bool {
			if totals[a].Amount != totals[b].Amount {
				return totals[a].Amount > totals[b].Amount
			}
			return totals[a].Category < totals[b].Category
		})
		if n > 0 && len(totals) > n {
			totals = totals[:n]
		}
		return totals
	}
	return []models.ExpenseCategoryTotal{}
}

// lastMonthSnapshot prefers the most recent month with activity, falling
// back to the final bucket so callers always see the current window edge.
func lastMonthSnapshot(series []models.MonthlyPLData) *models.MonthlyPLData {
	for i := len(series) - 1; i >= 0; i-- {
		if !series[i].IsEmpty() {
			m := series[i]
			return &m
		}
	}
	if len(series) == 0 {
		return nil
	}
	m := series[len(series)-1]
	return &m
}

// Calculate builds the full health snapshot for one property from its
// units and its monthly P&L series.
func (c Config) Calculate(property *models.Property, report *models.PropertyPLReport, now time.Time) models.OperationalMetrics {
	units := property.PropertyUnits

	var total, potential float64
	for i := range units {
		potential += units[i].Rent
		if !units[i].IsVacant() {
			total += units[i].Rent
		}
	}

	return models.OperationalMetrics{
		OccupancyRate:             OccupancyRate(units),
		VacantUnits:               VacantUnits(units, now),
		DelinquentUnits:           c.DelinquentUnits(units, now),
		ConsecutiveMonthsWithLoss: ConsecutiveMonthsWithLosses(report.Months),
		TopExpenseCategories:      TopExpenseCategories(report.Months, c.TopExpenseCategories),
		LastMonth:                 lastMonthSnapshot(report.Months),
		TotalMonthlyRent:          total,
		PotentialMonthlyRent:      potential,
	}
}
