package domain

import (
	"fmt"
	"time"
)

// isoLayout is the wire format for dates ("2006-01-02").
const isoLayout = time.DateOnly

// displayLayout renders dates the way the booking form shows them (dd.MM.yyyy).
const displayLayout = "02.01.2006"

// Date is a calendar day with no time of day and no zone.
// Date values are comparable with ==, which BookingEntry equality relies on.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the Date for the given year, month and day.
// Out-of-range values are normalized the way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
// Pass t.Local() to get the day as seen on the host's clock.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("domain.ParseDate: %w", err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC at the start of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// String returns the ISO representation, e.g. "2024-06-01".
func (d Date) String() string {
	return d.Time().Format(isoLayout)
}

// Format returns the display representation, e.g. "01.06.2024".
func (d Date) Format() string {
	return d.Time().Format(displayLayout)
}
