/*
recur.go - Recurring weekday expansion

PURPOSE:
  Expands a recurring request (start date, end date, target weekday) into
  the concrete ordered sequence of calendar dates it covers. Each expanded
  date behaves like an individual request for clash-checking purposes.

WEEKDAY CONVENTION:
  The canonical encoding is 0-6 with 0 = Sunday, matching time.Weekday.
  The boundary rejects anything outside that range (see ParseWeekday).

EMPTY EXPANSION:
  An inverted range (start > end) or a range containing no matching weekday
  yields an empty sequence. This is a valid, non-error outcome; the
  submission path turns it into a ValidationError with the
  no-valid-dates message.
*/
package schedule

import (
	"fmt"
	"time"
)

// Expand returns every date in [start, end] whose weekday equals target,
// ascending. Pure and deterministic: calling twice yields identical output.
func Expand(start, end Date, target time.Weekday) []Date {
	if start.After(end) {
		return nil
	}

	// Jump to the first matching weekday at or after start, then step by 7.
	offset := (int(target) - int(start.Weekday()) + 7) % 7
	var dates []Date
	for d := start.AddDays(offset); d.BeforeOrEqual(end); d = d.AddDays(7) {
		dates = append(dates, d)
	}
	return dates
}

// ParseWeekday validates the canonical 0-6 (0 = Sunday) integer encoding.
func ParseWeekday(n int) (time.Weekday, error) {
	if n < 0 || n > 6 {
		return 0, fmt.Errorf("invalid weekday %d (want 0-6, 0 = Sunday)", n)
	}
	return time.Weekday(n), nil
}
