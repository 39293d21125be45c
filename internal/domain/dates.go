// internal/domain/dates.go
package domain

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for transaction dates.
	DateLayout = "2006-01-02"
	// MonthLayout is the wire format for months ("yyyy-mm").
	MonthLayout = "2006-01"
)

// TruncateDay drops the time of day and normalises t to UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "2006-01-02" date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// MonthOf returns the "yyyy-mm" month a date falls in.
func MonthOf(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseMonth returns the first day of a "yyyy-mm" month.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return t, nil
}
