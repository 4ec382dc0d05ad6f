/*
summary.go - Team schedule day totals

PURPOSE:
  Builds the per-staff view behind the team-schedule endpoint: how many
  WFH days a staff member has in a period, with half-day periods weighted
  at 0.5 and full days at 1.

COUNTING RULES:
  - Approved and Withdrawal Pending rows count as confirmed WFH days
    (a withdrawal under review is still scheduled away from the office).
  - Pending rows are reported separately as tentative.
  - Rejected and Withdrawn rows do not appear at all.
  - Recurring series contribute one entry per expanded date inside the
    period, carrying the series status.
*/
package schedule

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	fullDay = decimal.NewFromInt(1)
	halfDay = decimal.NewFromFloat(0.5)
)

// DayWeight returns the day-count weight of a period: 0.5 for AM/PM, 1 for FULL.
func DayWeight(p Period) decimal.Decimal {
	if p == PeriodFull {
		return fullDay
	}
	return halfDay
}

// ScheduleEntry is one dated slot in a staff member's summarized schedule.
type ScheduleEntry struct {
	Date   Date
	Period Period
	Status Status

	// RecurringID is set when the entry came from a recurring series.
	RecurringID string
}

// StaffSummary is the per-staff rollup for a period.
type StaffSummary struct {
	StaffID       string
	ConfirmedDays decimal.Decimal // Approved + Withdrawal Pending
	TentativeDays decimal.Decimal // Pending
	Entries       []ScheduleEntry // ascending by date
}

// Summarize rolls up a staff member's requests over [from, to] inclusive.
// Pure: operates only on the data passed in.
func Summarize(staffID string, reqs []Request, recs []RecurringRequest, from, to Date) StaffSummary {
	window := Window{Start: from, End: to}
	s := StaffSummary{
		StaffID:       staffID,
		ConfirmedDays: decimal.Zero,
		TentativeDays: decimal.Zero,
	}

	for _, r := range reqs {
		if !r.Status.IsLive() || !window.Contains(r.Date) {
			continue
		}
		s.add(ScheduleEntry{Date: r.Date, Period: r.Period, Status: r.Status})
	}
	for _, r := range recs {
		if !r.Status.IsLive() {
			continue
		}
		for _, d := range r.Dates() {
			if !window.Contains(d) {
				continue
			}
			s.add(ScheduleEntry{Date: d, Period: r.Period, Status: r.Status, RecurringID: r.ID})
		}
	}

	sortEntries(s.Entries)
	return s
}

func (s *StaffSummary) add(e ScheduleEntry) {
	s.Entries = append(s.Entries, e)
	w := DayWeight(e.Period)
	if e.Status == StatusPending {
		s.TentativeDays = s.TentativeDays.Add(w)
	} else {
		s.ConfirmedDays = s.ConfirmedDays.Add(w)
	}
}

func sortEntries(entries []ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
