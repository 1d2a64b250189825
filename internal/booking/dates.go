// Package booking implements the core reservation rules: calendar
// date handling, half-open interval conflict detection, price
// computation and the reservation status state machine.  The package
// is free of I/O so every rule can be exercised without a database.
package booking

import "time"

// DateLayout is the wire format for calendar dates (check-in and
// check-out are dates, not timestamps).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Date builds a UTC midnight time.Time for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayOf truncates a timestamp to its UTC calendar day.  Dashboard
// counters compare stored DATE columns against "today" through this.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return Date(y, m, d)
}

// Nights returns the length of the stay [checkIn, checkOut) in whole
// days.  Both arguments are expected to be midnight-aligned; the
// result is non-positive when the range is empty or inverted.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.  Boundary equality is not an overlap, so
// a stay ending on a given day and another starting that same day can
// coexist on one room (checkout morning, checkin afternoon).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// MonthRange returns the half-open interval [first of month, first of
// next month) used by the calendar query.  Year rollover from
// December is handled by AddDate.
func MonthRange(year int, month time.Month) (start, end time.Time) {
	start = Date(year, month, 1)
	return start, start.AddDate(0, 1, 0)
}
