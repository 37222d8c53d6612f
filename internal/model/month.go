package model

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month is a calendar month in "YYYY-MM" form, the granularity the gateway
// reports settlements at.
type Month string

func ParseMonth(s string) (Month, error) {
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", fmt.Errorf("parse month %q: %w", s, err)
	}
	return Month(s), nil
}

func MonthOf(t time.Time) Month {
	return Month(t.UTC().Format(monthLayout))
}

func (m Month) String() string {
	return string(m)
}

// Bounds returns the half-open interval [from, to) covering the month.
// A Month produced by ParseMonth or MonthOf always parses back.
func (m Month) Bounds() (from, to time.Time) {
	from, _ = time.Parse(monthLayout, string(m))
	return from, from.AddDate(0, 1, 0)
}
