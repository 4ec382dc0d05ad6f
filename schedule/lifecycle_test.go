/*
lifecycle_test.go - End-to-end lifecycle scenarios

ORGANIZATION:
  1. Single submission - field, window and clash checks
  2. Recurring submission - range, expansion and accumulated conflicts
  3. Approval / rejection - state machine guards
  4. Withdrawal - snapshot, decision, revert
  5. Expire sweep - bulk transition and idempotency

All scenarios run against the in-memory store with the clock pinned to
2024-10-01, making the application window 2024-08-01 .. 2025-01-01.
*/
package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/wfh-engine/schedule"
	"github.com/warp/wfh-engine/schedule/store"
)

var testNow = time.Date(2024, time.October, 1, 9, 0, 0, 0, time.UTC)

func newLifecycle() (*schedule.Lifecycle, *store.Memory) {
	mem := store.NewMemory()
	lc := schedule.NewLifecycle(mem).WithClock(func() time.Time { return testNow })
	return lc, mem
}

func submitApproved(t *testing.T, lc *schedule.Lifecycle, staffID string, date schedule.Date, period schedule.Period) *schedule.Request {
	t.Helper()
	ctx := context.Background()
	req, err := lc.SubmitSingle(ctx, schedule.SubmitInput{StaffID: staffID, Date: date, Period: period})
	require.NoError(t, err)
	approved, err := lc.Approve(ctx, req.ID, "170166")
	require.NoError(t, err)
	return approved
}

func seedEmployees(t *testing.T, mem *store.Memory) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, mem.SaveEmployee(ctx, schedule.Employee{
		StaffID: "150123", FirstName: "Sam", LastName: "Lee", Position: "Account Manager",
	}))
	require.NoError(t, mem.SaveEmployee(ctx, schedule.Employee{
		StaffID: "170166", FirstName: "Dana", LastName: "Ng", Position: "Sales Director",
	}))
}

// =============================================================================
// 1. SINGLE SUBMISSION
// =============================================================================

func TestSubmitSingle_CreatesPendingRequest(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	req, err := lc.SubmitSingle(ctx, schedule.SubmitInput{
		StaffID: "150123",
		Date:    schedule.NewDate(2024, time.October, 5),
		Period:  schedule.PeriodAM,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, schedule.StatusPending, req.Status)
	assert.Equal(t, testNow, req.RequestedAt)
	assert.Nil(t, req.DecisionDate)
}

func TestSubmitSingle_MissingFieldsFail(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()
	date := schedule.NewDate(2024, time.October, 5)

	cases := []schedule.SubmitInput{
		{Date: date, Period: schedule.PeriodAM},            // no staff
		{StaffID: "150123", Period: schedule.PeriodAM},     // no date
		{StaffID: "150123", Date: date},                    // no period
		{StaffID: "150123", Date: date, Period: "MORNING"}, // bad period
	}
	for _, in := range cases {
		_, err := lc.SubmitSingle(ctx, in)
		require.Error(t, err)
		assert.Equal(t, schedule.MsgSubmissionFailed, err.Error())
		assert.True(t, errors.Is(err, schedule.ErrValidation))
	}
}

func TestSubmitSingle_OutOfWindowDateFails(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	_, err := lc.SubmitSingle(ctx, schedule.SubmitInput{
		StaffID: "150123",
		Date:    schedule.NewDate(2023, time.January, 1),
		Period:  schedule.PeriodFull,
	})

	require.Error(t, err)
	assert.Equal(t, schedule.MsgDateOutOfWindow, err.Error())
}

func TestSubmitSingle_DuplicateSlotClashes(t *testing.T) {
	// GIVEN: A pending AM request on Oct 5
	lc, _ := newLifecycle()
	ctx := context.Background()
	date := schedule.NewDate(2024, time.October, 5)

	_, err := lc.SubmitSingle(ctx, schedule.SubmitInput{StaffID: "150123", Date: date, Period: schedule.PeriodAM})
	require.NoError(t, err)

	// WHEN: Submitting AM on the same date again
	_, err = lc.SubmitSingle(ctx, schedule.SubmitInput{StaffID: "150123", Date: date, Period: schedule.PeriodAM})

	// THEN: ConflictError carrying the colliding date
	require.Error(t, err)
	var conflict *schedule.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Dates, 1)
	assert.Equal(t, "2024-10-05", conflict.Dates[0].String())

	// AND: FULL on the same date also clashes
	_, err = lc.SubmitSingle(ctx, schedule.SubmitInput{StaffID: "150123", Date: date, Period: schedule.PeriodFull})
	assert.True(t, errors.Is(err, schedule.ErrConflict))
}

func TestSubmitSingle_AMAndPMSameDayCoexist(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()
	date := schedule.NewDate(2024, time.October, 5)

	_, err := lc.SubmitSingle(ctx, schedule.SubmitInput{StaffID: "150123", Date: date, Period: schedule.PeriodAM})
	require.NoError(t, err)

	_, err = lc.SubmitSingle(ctx, schedule.SubmitInput{StaffID: "150123", Date: date, Period: schedule.PeriodPM})
	assert.NoError(t, err, "AM and PM on the same date occupy different slots")
}

func TestSubmitSingle_OtherStaffUnaffected(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()
	date := schedule.NewDate(2024, time.October, 5)

	_, err := lc.SubmitSingle(ctx, schedule.SubmitInput{StaffID: "150123", Date: date, Period: schedule.PeriodFull})
	require.NoError(t, err)

	_, err = lc.SubmitSingle(ctx, schedule.SubmitInput{StaffID: "150124", Date: date, Period: schedule.PeriodFull})
	assert.NoError(t, err, "clash checks are scoped per staff member")
}

func TestSubmitSingle_RejectedRequestFreesSlot(t *testing.T) {
	// GIVEN: A rejected request on Oct 5
	lc, _ := newLifecycle()
	ctx := context.Background()
	date := schedule.NewDate(2024, time.October, 5)

	req, err := lc.SubmitSingle(ctx, schedule.SubmitInput{StaffID: "150123", Date: date, Period: schedule.PeriodFull})
	require.NoError(t, err)
	_, err = lc.Reject(ctx, req.ID, "170166", "team on-site day")
	require.NoError(t, err)

	// WHEN: Submitting the same slot again
	// THEN: No clash; rejected requests no longer occupy the slot
	_, err = lc.SubmitSingle(ctx, schedule.SubmitInput{StaffID: "150123", Date: date, Period: schedule.PeriodFull})
	assert.NoError(t, err)
}

// =============================================================================
// 2. RECURRING SUBMISSION
// =============================================================================

func TestSubmitRecurring_CreatesPendingSeries(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	req, err := lc.SubmitRecurring(ctx, schedule.RecurringInput{
		StaffID: "150123",
		Start:   schedule.NewDate(2024, time.October, 1),
		End:     schedule.NewDate(2024, time.October, 31),
		Weekday: time.Wednesday,
		Period:  schedule.PeriodFull,
	})

	require.NoError(t, err)
	assert.Equal(t, schedule.StatusPending, req.Status)
	assert.Len(t, req.Dates(), 5, "October 2024 has five Wednesdays")
}

func TestSubmitRecurring_MissingFieldsFail(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	_, err := lc.SubmitRecurring(ctx, schedule.RecurringInput{
		Start:   schedule.NewDate(2024, time.October, 1),
		End:     schedule.NewDate(2024, time.October, 31),
		Weekday: time.Monday,
		Period:  schedule.PeriodAM,
	})

	require.Error(t, err)
	assert.Equal(t, schedule.MsgFillAllFields, err.Error())
}

func TestSubmitRecurring_OutOfWindowRangeFails(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	_, err := lc.SubmitRecurring(ctx, schedule.RecurringInput{
		StaffID: "150123",
		Start:   schedule.NewDate(2022, time.January, 1),
		End:     schedule.NewDate(2022, time.March, 1),
		Weekday: time.Monday,
		Period:  schedule.PeriodAM,
	})

	require.Error(t, err)
	assert.Equal(t, schedule.MsgRangeOutOfWindow, err.Error())
}

func TestSubmitRecurring_EmptyExpansionFails(t *testing.T) {
	// GIVEN: A Monday-to-Wednesday range with no Saturday in it
	lc, _ := newLifecycle()
	ctx := context.Background()

	_, err := lc.SubmitRecurring(ctx, schedule.RecurringInput{
		StaffID: "150123",
		Start:   schedule.NewDate(2024, time.October, 7),
		End:     schedule.NewDate(2024, time.October, 9),
		Weekday: time.Saturday,
		Period:  schedule.PeriodFull,
	})

	require.Error(t, err)
	assert.Equal(t, schedule.MsgNoValidDates, err.Error())
}

func TestSubmitRecurring_ReportsAllConflicts(t *testing.T) {
	// GIVEN: Existing FULL requests on two of October's Saturdays
	lc, _ := newLifecycle()
	ctx := context.Background()
	for _, day := range []int{5, 19} {
		_, err := lc.SubmitSingle(ctx, schedule.SubmitInput{
			StaffID: "150123",
			Date:    schedule.NewDate(2024, time.October, day),
			Period:  schedule.PeriodFull,
		})
		require.NoError(t, err)
	}

	// WHEN: Submitting a recurring Saturday series over October
	_, err := lc.SubmitRecurring(ctx, schedule.RecurringInput{
		StaffID: "150123",
		Start:   schedule.NewDate(2024, time.October, 1),
		End:     schedule.NewDate(2024, time.October, 31),
		Weekday: time.Saturday,
		Period:  schedule.PeriodAM,
	})

	// THEN: Both colliding dates are reported in one error
	require.Error(t, err)
	var conflict *schedule.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Dates, 2)
	assert.Equal(t, "2024-10-05", conflict.Dates[0].String())
	assert.Equal(t, "2024-10-19", conflict.Dates[1].String())
}

func TestSubmitRecurring_LiveSeriesOccupiesExpandedDates(t *testing.T) {
	// GIVEN: A pending recurring Wednesday series over October
	lc, _ := newLifecycle()
	ctx := context.Background()
	_, err := lc.SubmitRecurring(ctx, schedule.RecurringInput{
		StaffID: "150123",
		Start:   schedule.NewDate(2024, time.October, 1),
		End:     schedule.NewDate(2024, time.October, 31),
		Weekday: time.Wednesday,
		Period:  schedule.PeriodFull,
	})
	require.NoError(t, err)

	// WHEN: Submitting a single request on one of the expanded dates
	// (2024-10-09 is a Wednesday)
	_, err = lc.SubmitSingle(ctx, schedule.SubmitInput{
		StaffID: "150123",
		Date:    schedule.NewDate(2024, time.October, 9),
		Period:  schedule.PeriodAM,
	})

	// THEN: The expanded date clashes like an individual request would
	assert.True(t, errors.Is(err, schedule.ErrConflict))
}

// =============================================================================
// 3. APPROVAL / REJECTION
// =============================================================================

func TestApprove_StampsApproverAndDecisionDate(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	req, err := lc.SubmitSingle(ctx, schedule.SubmitInput{
		StaffID: "150123",
		Date:    schedule.NewDate(2024, time.October, 5),
		Period:  schedule.PeriodAM,
	})
	require.NoError(t, err)

	approved, err := lc.Approve(ctx, req.ID, "170166")
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusApproved, approved.Status)
	assert.Equal(t, "170166", approved.ApproverID)
	require.NotNil(t, approved.DecisionDate)
	assert.Equal(t, testNow, *approved.DecisionDate)
}

func TestApprove_OnlyFromPending(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	approved := submitApproved(t, lc, "150123", schedule.NewDate(2024, time.October, 5), schedule.PeriodAM)

	_, err := lc.Approve(ctx, approved.ID, "170166")
	require.Error(t, err)
	assert.True(t, errors.Is(err, schedule.ErrValidation))
}

func TestReject_RecordsReason(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	req, err := lc.SubmitSingle(ctx, schedule.SubmitInput{
		StaffID: "150123",
		Date:    schedule.NewDate(2024, time.October, 5),
		Period:  schedule.PeriodAM,
	})
	require.NoError(t, err)

	rejected, err := lc.Reject(ctx, req.ID, "170166", "team on-site day")
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusRejected, rejected.Status)
	assert.Equal(t, "team on-site day", rejected.Comments)
	require.NotNil(t, rejected.DecisionDate)
}

func TestApprove_UnknownIDIsNotFound(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	_, err := lc.Approve(ctx, "no-such-id", "170166")
	require.Error(t, err)
	assert.True(t, schedule.IsNotFound(err))
}

func TestApproveRecurring_StampsSeries(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	req, err := lc.SubmitRecurring(ctx, schedule.RecurringInput{
		StaffID: "150123",
		Start:   schedule.NewDate(2024, time.October, 1),
		End:     schedule.NewDate(2024, time.October, 31),
		Weekday: time.Wednesday,
		Period:  schedule.PeriodFull,
	})
	require.NoError(t, err)

	approved, err := lc.ApproveRecurring(ctx, req.ID, "170166")
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusApproved, approved.Status)
	assert.Equal(t, "170166", approved.ApproverID)

	_, err = lc.RejectRecurring(ctx, req.ID, "170166", "late")
	assert.True(t, errors.Is(err, schedule.ErrValidation), "decided series cannot be re-decided")
}

// =============================================================================
// 4. WITHDRAWAL
// =============================================================================

func TestRequestWithdrawal_SnapshotsAndMovesOrigin(t *testing.T) {
	lc, mem := newLifecycle()
	ctx := context.Background()
	seedEmployees(t, mem)

	approved := submitApproved(t, lc, "150123", schedule.NewDate(2024, time.October, 5), schedule.PeriodAM)

	wd, err := lc.RequestWithdrawal(ctx, approved.ID, "client visit moved")
	require.NoError(t, err)

	assert.Equal(t, schedule.StatusPending, wd.Status)
	assert.Equal(t, "Sam Lee", wd.StaffName)
	assert.Equal(t, "Account Manager", wd.StaffPosition)
	assert.Equal(t, "Dana Ng", wd.ApproverName)
	assert.Equal(t, "client visit moved", wd.Reason)

	origin, err := mem.GetRequest(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusWithdrawalPending, origin.Status)
}

func TestRequestWithdrawal_RequiresReason(t *testing.T) {
	lc, mem := newLifecycle()
	ctx := context.Background()
	seedEmployees(t, mem)

	approved := submitApproved(t, lc, "150123", schedule.NewDate(2024, time.October, 5), schedule.PeriodAM)

	_, err := lc.RequestWithdrawal(ctx, approved.ID, "")
	require.Error(t, err)
	assert.Equal(t, schedule.MsgFillAllFields, err.Error())
}

func TestRequestWithdrawal_OnlyFromApproved(t *testing.T) {
	lc, mem := newLifecycle()
	ctx := context.Background()
	seedEmployees(t, mem)

	req, err := lc.SubmitSingle(ctx, schedule.SubmitInput{
		StaffID: "150123",
		Date:    schedule.NewDate(2024, time.October, 5),
		Period:  schedule.PeriodAM,
	})
	require.NoError(t, err)

	_, err = lc.RequestWithdrawal(ctx, req.ID, "changed plans")
	require.Error(t, err)
	assert.True(t, errors.Is(err, schedule.ErrValidation))
}

func TestApproveWithdrawal_OriginBecomesWithdrawn(t *testing.T) {
	lc, mem := newLifecycle()
	ctx := context.Background()
	seedEmployees(t, mem)

	approved := submitApproved(t, lc, "150123", schedule.NewDate(2024, time.October, 5), schedule.PeriodAM)
	wd, err := lc.RequestWithdrawal(ctx, approved.ID, "client visit moved")
	require.NoError(t, err)

	closed, err := lc.ApproveWithdrawal(ctx, wd.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusApproved, closed.Status)

	origin, err := mem.GetRequest(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusWithdrawn, origin.Status)

	// The slot is free again
	_, err = lc.SubmitSingle(ctx, schedule.SubmitInput{
		StaffID: "150123",
		Date:    schedule.NewDate(2024, time.October, 5),
		Period:  schedule.PeriodAM,
	})
	assert.NoError(t, err)
}

func TestRejectWithdrawal_OriginRevertsToApproved(t *testing.T) {
	lc, mem := newLifecycle()
	ctx := context.Background()
	seedEmployees(t, mem)

	approved := submitApproved(t, lc, "150123", schedule.NewDate(2024, time.October, 5), schedule.PeriodAM)
	wd, err := lc.RequestWithdrawal(ctx, approved.ID, "client visit moved")
	require.NoError(t, err)

	closed, err := lc.RejectWithdrawal(ctx, wd.ID, "cover needed that day")
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusRejected, closed.Status)
	assert.Equal(t, "cover needed that day", closed.Comments)

	origin, err := mem.GetRequest(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusApproved, origin.Status)
}

func TestWithdrawalPending_StillOccupiesSlot(t *testing.T) {
	lc, mem := newLifecycle()
	ctx := context.Background()
	seedEmployees(t, mem)

	approved := submitApproved(t, lc, "150123", schedule.NewDate(2024, time.October, 5), schedule.PeriodAM)
	_, err := lc.RequestWithdrawal(ctx, approved.ID, "client visit moved")
	require.NoError(t, err)

	_, err = lc.SubmitSingle(ctx, schedule.SubmitInput{
		StaffID: "150123",
		Date:    schedule.NewDate(2024, time.October, 5),
		Period:  schedule.PeriodAM,
	})
	assert.True(t, errors.Is(err, schedule.ErrConflict),
		"a request under withdrawal review still blocks its slot")
}

// =============================================================================
// 5. EXPIRE SWEEP
// =============================================================================

func TestExpireSweep_RejectsPastApprovedOnly(t *testing.T) {
	lc, mem := newLifecycle()
	ctx := context.Background()

	// GIVEN: An approved past-dated request, an approved future request,
	// and a pending past-dated request
	past := submitApproved(t, lc, "150123", schedule.NewDate(2024, time.September, 15), schedule.PeriodFull)
	future := submitApproved(t, lc, "150123", schedule.NewDate(2024, time.October, 15), schedule.PeriodFull)
	pendingPast, err := lc.SubmitSingle(ctx, schedule.SubmitInput{
		StaffID: "150123",
		Date:    schedule.NewDate(2024, time.September, 20),
		Period:  schedule.PeriodAM,
	})
	require.NoError(t, err)

	// WHEN: Running the sweep
	n, err := lc.ExpireSweep(ctx, "150123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// THEN: Only the approved past request transitions
	got, err := mem.GetRequest(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusRejected, got.Status)
	assert.Contains(t, got.Comments, schedule.SweepComment)
	require.NotNil(t, got.DecisionDate)

	got, err = mem.GetRequest(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusApproved, got.Status)

	got, err = mem.GetRequest(ctx, pendingPast.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusPending, got.Status, "pending requests are not swept")
}

func TestExpireSweep_Idempotent(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	submitApproved(t, lc, "150123", schedule.NewDate(2024, time.September, 15), schedule.PeriodFull)

	n, err := lc.ExpireSweep(ctx, "150123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = lc.ExpireSweep(ctx, "150123")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "a re-run finds nothing to transition")
}

func TestExpireSweep_ZeroMatchesIsSuccess(t *testing.T) {
	lc, _ := newLifecycle()
	ctx := context.Background()

	n, err := lc.ExpireSweep(ctx, "150123")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
