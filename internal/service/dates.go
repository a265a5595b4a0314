package service

import (
	"strings"
	"time"
)

// DateLayout is the storage and response format for exercise dates,
// e.g. "Mon May 01 2023".
const DateLayout = "Mon Jan 02 2006"

// inputLayouts are the formats accepted for dates supplied by clients,
// tried in order. Stored dates always use DateLayout, so log filtering
// reuses the same table.
var inputLayouts = []string{
	"2006-01-02",
	DateLayout,
	time.RFC3339,
}

// parseDate resolves a raw date string to a calendar date. The second
// return value is false when the input is empty or matches no accepted
// layout; callers decide what that means (default to today on writes,
// ignore the filter on reads).
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			// Truncate to the date: comparisons are date-granular.
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// formatDate renders a date in the stored text form.
func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}
