package plreport

import (
	"fmt"
	"sort"
	"time"

	"github.com/rentfolio/rentfolio-api/internal/models"
)

// GeneratePropertyReport buckets one property's operating transactions
// into a trailing window of calendar months ending at asOf. Every month
// in the window appears even when it had no activity.
func GeneratePropertyReport(transactions []models.Transaction, propertyID uint, address string, months int, asOf time.Time) models.PropertyPLReport {
	keys := monthWindow(asOf, months)
	buckets := newBuckets(keys)

	for i := range transactions {
		t := &transactions[i]
		if t.PropertyID == nil || *t.PropertyID != propertyID {
			continue
		}
		addToBucket(buckets, t)
	}

	series := collectSeries(keys, buckets)
	report := models.PropertyPLReport{
		PropertyID: fmt.Sprintf("%d", propertyID),
		Address:    address,
		Months:     series,
		Summary:    summarize(series),
	}
	report.LastFullMonth = findMonth(series, previousMonthKey(asOf))
	return report
}

// GeneratePortfolioReport rolls owned properties plus business-level
// entries into one monthly series. Archived properties and properties
// still under offer are left out; Rehab properties are owned, so their
// spend counts. Transactions with no property are always counted under
// the synthetic business breakdown.
func GeneratePortfolioReport(transactions []models.Transaction, properties []models.Property, months int, asOf time.Time) models.PortfolioPLReport {
	keys := monthWindow(asOf, months)
	buckets := newBuckets(keys)

	included := make(map[uint]*models.Property, len(properties))
	for i := range properties {
		p := &properties[i]
		if p.Archived || p.PreAcquisition() {
			continue
		}
		included[p.ID] = p
	}

	lastFullMonth := previousMonthKey(asOf)
	totals := make(map[string]*models.PropertyBreakdown)
	for i := range transactions {
		t := &transactions[i]

		var key, addr string
		if t.PropertyID == nil {
			key, addr = models.BusinessPropertyID, "Business"
		} else {
			p, ok := included[*t.PropertyID]
			if !ok {
				continue
			}
			key, addr = fmt.Sprintf("%d", p.ID), p.Address
		}

		month, income, expense, ok := classify(t)
		if !ok {
			continue
		}
		if b, inWindow := buckets[month]; inWindow {
			applyAmounts(b, t.Category, income, expense)

			bd := totals[key]
			if bd == nil {
				bd = &models.PropertyBreakdown{PropertyID: key, Address: addr}
				totals[key] = bd
			}
			bd.TotalIncome += income
			bd.TotalExpenses += expense
			bd.NetIncome += income - expense
			if month == lastFullMonth {
				bd.LastMonthIncome += income
				bd.LastMonthExpenses += expense
				bd.LastMonthNet += income - expense
			}
		}
	}

	series := collectSeries(keys, buckets)
	report := models.PortfolioPLReport{
		Months:  series,
		Summary: summarize(series),
	}
	for _, bd := range totals {
		report.Breakdowns = append(report.Breakdowns, *bd)
	}
	sort.Slice(report.Breakdowns, func(i, j int) bool {
		a, b := report.Breakdowns[i], report.Breakdowns[j]
		if a.NetIncome != b.NetIncome {
			return a.NetIncome > b.NetIncome
		}
		return a.Address < b.Address
	})
	return report
}

func newBuckets(keys []string) map[string]*models.MonthlyPLData {
	buckets := make(map[string]*models.MonthlyPLData, len(keys))
	for _, k := range keys {
		buckets[k] = &models.MonthlyPLData{
			Month:              k,
			IncomeByCategory:   map[string]float64{},
			ExpensesByCategory: map[string]float64{},
		}
	}
	return buckets
}

// classify resolves a transaction's reporting month and splits its signed
// amount into income and expense magnitudes. Capital expenditures and
// entries with malformed dates are dropped.
func classify(t *models.Transaction) (month string, income, expense float64, ok bool) {
	if !t.IsOperating() {
		return "", 0, 0, false
	}
	month, ok = bucketKey(t.BucketDate())
	if !ok {
		return "", 0, 0, false
	}
	if t.Amount >= 0 {
		return month, t.Amount, 0, true
	}
	return month, 0, -t.Amount, true
}

func addToBucket(buckets map[string]*models.MonthlyPLData, t *models.Transaction) {
	month, income, expense, ok := classify(t)
	if !ok {
		return
	}
	if b, inWindow := buckets[month]; inWindow {
		applyAmounts(b, t.Category, income, expense)
	}
}

func applyAmounts(b *models.MonthlyPLData, category string, income, expense float64) {
	if income != 0 {
		b.IncomeByCategory[category] += income
		b.TotalIncome += income
	}
	if expense != 0 {
		b.ExpensesByCategory[category] += expense
		b.TotalExpenses += expense
	}
	b.NetIncome = b.TotalIncome - b.TotalExpenses
}

func collectSeries(keys []string, buckets map[string]*models.MonthlyPLData) []models.MonthlyPLData {
	series := make([]models.MonthlyPLData, 0, len(keys))
	for _, k := range keys {
		series = append(series, *buckets[k])
	}
	return series
}

func summarize(series []models.MonthlyPLData) models.PLSummary {
	var s models.PLSummary
	for i := range series {
		s.TotalIncome += series[i].TotalIncome
		s.TotalExpenses += series[i].TotalExpenses
	}
	s.NetIncome = s.TotalIncome - s.TotalExpenses
	if n := len(series); n > 0 {
		s.AverageIncome = s.TotalIncome / float64(n)
		s.AverageExpenses = s.TotalExpenses / float64(n)
		s.AverageNetIncome = s.NetIncome / float64(n)
	}
	return s
}

// findMonth returns a copy of the named month from the series, or nil
// when the series does not cover it.
func findMonth(series []models.MonthlyPLData, key string) *models.MonthlyPLData {
	for i := range series {
		if series[i].Month == key {
			m := series[i]
			return &m
		}
	}
	return nil
}
