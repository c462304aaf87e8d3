// Package plreport aggregates raw transactions into monthly profit and
// loss reports for single properties and for the whole portfolio.
package plreport

import (
	"time"
)

const (
	monthKeyLayout = "2006-01"
	dateLayout     = "2006-01-02"
)

// DefaultWindowMonths is the reporting window used when the caller does
// not ask for a specific one.
const DefaultWindowMonths = 6

// monthWindow returns the last n calendar-month keys ending at asOf's
// month, oldest first. Months are constructed on day 1 so December
// windows never skip or double a month.
func monthWindow(asOf time.Time, n int) []string {
	if n <= 0 {
		n = DefaultWindowMonths
	}
	keys := make([]string, 0, n)
	year, month, _ := asOf.Date()
	for i := n - 1; i >= 0; i-- {
		m := time.Date(year, month-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		keys = append(keys, m.Format(monthKeyLayout))
	}
	return keys
}

// bucketKey reduces a YYYY-MM-DD date string to its YYYY-MM month key.
// Malformed dates return false and the caller skips the entry.
func bucketKey(date string) (string, bool) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", false
	}
	return date[:7], true
}

// previousMonthKey returns the month key immediately before asOf's month.
func previousMonthKey(asOf time.Time) string {
	year, month, _ := asOf.Date()
	return time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC).Format(monthKeyLayout)
}
