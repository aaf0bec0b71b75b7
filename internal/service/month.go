package service

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// monthKeyLayout is the wire format for month keys ("2026-02").
const monthKeyLayout = "2006-01"

var categoryCaser = cases.Title(language.English)

// parseMonth parses a YYYY-MM month key into the first instant of that
// month in UTC. Malformed input is a validation error, not a server error.
func parseMonth(month string) (time.Time, error) {
	if month == "" {
		return time.Time{}, NewValidationError("Month is required")
	}
	start, err := time.Parse(monthKeyLayout, month)
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("Invalid month %q, expected YYYY-MM", month))
	}
	return start, nil
}

// monthWindow returns the half-open window [first of month, first of next
// month) for the given month start.
func monthWindow(start time.Time) (time.Time, time.Time) {
	return start, start.AddDate(0, 1, 0)
}

// daysInMonth returns the calendar day count of the month containing t,
// leap years included.
func daysInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// canonicalCategory normalizes a free-text category label so that " food "
// and "FOOD" aggregate under the same key.
func canonicalCategory(category string) string {
	return categoryCaser.String(strings.ToLower(strings.TrimSpace(category)))
}
