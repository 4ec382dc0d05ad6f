/*
clash.go - AM/PM/FULL period clash detection

PURPOSE:
  Decides whether a candidate (date, period) collides with a staff member's
  existing schedule.

THE CLASH RULE:
  Two entries on the same date clash iff either period is FULL or the
  periods are identical. Equivalently: AM and PM on the same date coexist;
  anything touching FULL clashes; AM+AM or PM+PM clashes. The rule is
  symmetric in its arguments. Entries on different dates never clash.

SINGLE vs RECURRING:
  The single-date submission path fails fast on its one possible conflict.
  The recurring path checks every expanded date independently and reports
  ALL colliding dates in one error, not just the first.

SEE ALSO:
  - recur.go: produces the expanded dates the recurring path checks
  - lifecycle.go: gathers the existing entries and raises ConflictError
*/
package schedule

// Clashes reports whether two periods on the same date collide.
// Symmetric: Clashes(a, b) == Clashes(b, a).
func Clashes(a, b Period) bool {
	return a == PeriodFull || b == PeriodFull || a == b
}

// HasClash reports whether the candidate (date, period) collides with any
// existing entry.
func HasClash(existing []Entry, date Date, period Period) bool {
	for _, e := range existing {
		if e.Date.Equal(date) && Clashes(e.Period, period) {
			return true
		}
	}
	return false
}

// CollectClashes returns every candidate date that collides with the
// existing entries, ascending and de-duplicated. Used by the recurring
// submission path to report all conflicts at once.
func CollectClashes(existing []Entry, dates []Date, period Period) []Date {
	var conflicts []Date
	seen := make(map[Date]bool)
	for _, d := range dates {
		if seen[d] {
			continue
		}
		if HasClash(existing, d, period) {
			conflicts = append(conflicts, d)
			seen[d] = true
		}
	}
	SortDates(conflicts)
	return conflicts
}
