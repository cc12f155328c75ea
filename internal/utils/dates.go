package utils

import (
	"fmt"
	"time"
)

// dateLayouts are the layouts trial registries report dates in, most
// specific first. Month- and year-only dates are common for older records.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ParseFlexibleDate parses a date string in YYYY-MM-DD, YYYY-MM, or YYYY
// form. Partial dates resolve to the first day of the period.
func ParseFlexibleDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %s", s)
}

// NormalizeDate converts a flexible date string to canonical YYYY-MM-DD form.
// Unparseable or empty input normalizes to the empty string.
func NormalizeDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := ParseFlexibleDate(s)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
