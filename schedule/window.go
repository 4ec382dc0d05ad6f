/*
window.go - Application date window policy

PURPOSE:
  Decides whether a candidate WFH date falls inside the allowed application
  window: 2 calendar months back and 3 calendar months forward from "today",
  inclusive at both ends.

CALENDAR-MONTH ARITHMETIC:
  The bounds are computed by calendar-month arithmetic, not fixed day
  counts. Subtracting 2 months from a month-end date clamps to the last
  valid day of the target month (see Date.AddMonths) instead of overflowing
  into the following month.

RECURRING SUBMISSIONS:
  Both the start and the end of a recurring range must independently pass
  the window; if either is outside, the whole submission fails with a single
  recurring-specific message.

SEE ALSO:
  - date.go: clamped month arithmetic
  - errors.go: the verbatim out-of-range messages
*/
package schedule

const (
	windowMonthsBack    = 2
	windowMonthsForward = 3
)

// Window is the inclusive range of dates a request may be submitted for.
type Window struct {
	Start Date
	End   Date
}

// WindowAround computes the application window for a given "today".
func WindowAround(today Date) Window {
	return Window{
		Start: today.AddMonths(-windowMonthsBack),
		End:   today.AddMonths(windowMonthsForward),
	}
}

// Contains reports whether the date lies within the window, inclusive.
func (w Window) Contains(d Date) bool {
	return d.AfterOrEqual(w.Start) && d.BeforeOrEqual(w.End)
}

// CheckDate validates a single candidate date against the window.
func CheckDate(candidate, today Date) error {
	if !WindowAround(today).Contains(candidate) {
		return validationErr(MsgDateOutOfWindow)
	}
	return nil
}

// CheckRange validates a recurring range: both bounds must independently
// satisfy the window. Failure is reported once, not per-date.
func CheckRange(start, end, today Date) error {
	w := WindowAround(today)
	if !w.Contains(start) || !w.Contains(end) {
		return validationErr(MsgRangeOutOfWindow)
	}
	return nil
}
