package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical date-only wire and storage format.
const DateLayout = "2006-01-02"

// DateOnly returns midnight UTC of t's calendar date (in t's own location).
// All engine comparisons are made on values normalized this way.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOnlyPtr normalizes a nullable date.
func DateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := DateOnly(*t)
	return &v
}

// DaysBetween returns the whole number of calendar days from a to b.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// ParseDate parses a date in YYYY-MM-DD or RFC3339 form and normalizes it
// with DateOnly.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOnly(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
}

// ParseOptionalDate parses a nullable date string. Nil or blank input yields nil.
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatOptionalDate formats a nullable date as YYYY-MM-DD.
func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// CoalesceTime returns the first non-nil date, or nil.
func CoalesceTime(ptrs ...*time.Time) *time.Time {
	for _, p := range ptrs {
		if p != nil {
			return p
		}
	}
	return nil
}
