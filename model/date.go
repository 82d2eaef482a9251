package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire and display format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day (YYYY-MM-DD) with no time component.
// The zero value means no date.
type Date string

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate validates s and returns it as a Date. An empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool {
	return d == ""
}

// Before reports whether d is strictly earlier than other.
// Both dates are fixed-width, so lexical order is calendar order.
func (d Date) Before(other Date) bool {
	return d < other
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return d
	}
	return DateOf(t.AddDate(0, 0, n))
}

// WeekStart returns the Monday of the ISO week containing d.
func (d Date) WeekStart() Date {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return d
	}
	offset := (int(t.Weekday()) + 6) % 7
	return DateOf(t.AddDate(0, 0, -offset))
}

func (d Date) String() string {
	return string(d)
}
