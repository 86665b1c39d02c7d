package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseRentalDate accepts either a calendar date (yyyy-mm-dd, midnight UTC) or
// an RFC 3339 timestamp.
func ParseRentalDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd or RFC 3339", value)
	}
	return t.UTC(), nil
}

// RentalDays returns the number of billable days between start and end,
// rounding any fractional day up.
func RentalDays(start, end time.Time) int64 {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int64(math.Ceil(d.Hours() / 24))
}

// RentalTotalCents prices a rental at a flat daily rate.
func RentalTotalCents(start, end time.Time, pricePerDayCents int64) int64 {
	return RentalDays(start, end) * pricePerDayCents
}

// StartOfDay returns midnight UTC of t's calendar day, the instant a
// date-only rental start is stored at.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
