package schedule_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/wfh-engine/schedule"
)

func TestDayWeight(t *testing.T) {
	assert.True(t, schedule.DayWeight(schedule.PeriodAM).Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, schedule.DayWeight(schedule.PeriodPM).Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, schedule.DayWeight(schedule.PeriodFull).Equal(decimal.NewFromInt(1)))
}

func TestSummarize_SplitsConfirmedAndTentative(t *testing.T) {
	// GIVEN: An approved FULL day, a pending AM, a withdrawal-pending PM
	// and a rejected FULL day in October
	from := schedule.NewDate(2024, time.October, 1)
	to := schedule.NewDate(2024, time.October, 31)
	reqs := []schedule.Request{
		{ID: "r1", StaffID: "150123", Date: schedule.NewDate(2024, time.October, 5), Period: schedule.PeriodFull, Status: schedule.StatusApproved},
		{ID: "r2", StaffID: "150123", Date: schedule.NewDate(2024, time.October, 8), Period: schedule.PeriodAM, Status: schedule.StatusPending},
		{ID: "r3", StaffID: "150123", Date: schedule.NewDate(2024, time.October, 10), Period: schedule.PeriodPM, Status: schedule.StatusWithdrawalPending},
		{ID: "r4", StaffID: "150123", Date: schedule.NewDate(2024, time.October, 12), Period: schedule.PeriodFull, Status: schedule.StatusRejected},
	}

	s := schedule.Summarize("150123", reqs, nil, from, to)

	// THEN: Approved + Withdrawal Pending confirm 1.5 days, Pending is 0.5
	// tentative, Rejected does not appear
	assert.Equal(t, "1.5", s.ConfirmedDays.String())
	assert.Equal(t, "0.5", s.TentativeDays.String())
	require.Len(t, s.Entries, 3)
	assert.Equal(t, "2024-10-05", s.Entries[0].Date.String())
	assert.Equal(t, "2024-10-10", s.Entries[2].Date.String())
}

func TestSummarize_RecurringContributesPerExpandedDate(t *testing.T) {
	// GIVEN: An approved recurring Wednesday AM series over October
	from := schedule.NewDate(2024, time.October, 1)
	to := schedule.NewDate(2024, time.October, 31)
	recs := []schedule.RecurringRequest{{
		ID:      "rec1",
		StaffID: "150123",
		Start:   from,
		End:     to,
		Weekday: time.Wednesday,
		Period:  schedule.PeriodAM,
		Status:  schedule.StatusApproved,
	}}

	s := schedule.Summarize("150123", nil, recs, from, to)

	// THEN: Five Wednesdays at half a day each
	assert.Equal(t, "2.5", s.ConfirmedDays.String())
	require.Len(t, s.Entries, 5)
	for _, e := range s.Entries {
		assert.Equal(t, "rec1", e.RecurringID)
		assert.Equal(t, time.Wednesday, e.Date.Weekday())
	}
}

func TestSummarize_ClipsToPeriod(t *testing.T) {
	// GIVEN: Requests inside and outside the summarized period
	from := schedule.NewDate(2024, time.October, 1)
	to := schedule.NewDate(2024, time.October, 15)
	reqs := []schedule.Request{
		{ID: "r1", StaffID: "150123", Date: schedule.NewDate(2024, time.October, 5), Period: schedule.PeriodFull, Status: schedule.StatusApproved},
		{ID: "r2", StaffID: "150123", Date: schedule.NewDate(2024, time.October, 20), Period: schedule.PeriodFull, Status: schedule.StatusApproved},
	}
	recs := []schedule.RecurringRequest{{
		ID:      "rec1",
		StaffID: "150123",
		Start:   schedule.NewDate(2024, time.October, 1),
		End:     schedule.NewDate(2024, time.October, 31),
		Weekday: time.Wednesday,
		Period:  schedule.PeriodFull,
		Status:  schedule.StatusApproved,
	}}

	s := schedule.Summarize("150123", reqs, recs, from, to)

	// THEN: Only Oct 5 plus the Wednesdays on or before Oct 15 (2, 9) count
	assert.Equal(t, "3", s.ConfirmedDays.String())
	require.Len(t, s.Entries, 3)
}

func TestSummarize_EmptyScheduleIsZero(t *testing.T) {
	s := schedule.Summarize("150123", nil, nil,
		schedule.NewDate(2024, time.October, 1), schedule.NewDate(2024, time.October, 31))

	assert.Equal(t, "0", s.ConfirmedDays.String())
	assert.Equal(t, "0", s.TentativeDays.String())
	assert.Empty(t, s.Entries)
}
