/*
lifecycle.go - Request lifecycle state machine and submission pipeline

PURPOSE:
  Orchestrates the full lifecycle of WFH requests:
  1. Submission: field validation -> window check -> clash check -> Pending
  2. Decision:   Pending -> Approved / Rejected
  3. Withdrawal: Approved -> Withdrawal Pending -> Withdrawn / Approved
  4. Expiry:     scheduled sweep of past-dated Approved requests

STATE TRANSITIONS:

  (submit) --> Pending --approve--> Approved --withdraw--> Withdrawal Pending
                  |                    |                        |
               reject               (expired                approve/reject
                  |                  sweep)                     |
                  v                    v                 Withdrawn / Approved
               Rejected             Rejected

FAILURE SEMANTICS:
  Fail fast, no partial commits: if any precondition (required fields,
  window, clash) fails, nothing is written. Unknown IDs raise
  NotFoundError. Submission field failures carry path-specific verbatim
  messages (MsgSubmissionFailed for single, MsgFillAllFields for
  recurring and withdrawal).

CONCURRENCY:
  Each operation is a short-lived, independently invoked unit of work.
  Reads and writes within one operation are sequential; the clash check
  must complete before the insert. A race between two submissions that
  both pass clash detection against a stale read is accepted (see
  store.go).

SEE ALSO:
  - window.go, clash.go, recur.go: the pure checks this service composes
  - store.go: the injected persistence surface
*/
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SweepComment is appended to requests auto-rejected by the expire sweep.
const SweepComment = "Auto-rejected: WFH date has passed without approval action"

// Lifecycle drives request state transitions against an injected Store.
type Lifecycle struct {
	store Store
	clock func() time.Time
}

// NewLifecycle creates a lifecycle service backed by the given store.
func NewLifecycle(store Store) *Lifecycle {
	return &Lifecycle{store: store, clock: time.Now}
}

// WithClock overrides the time source. Tests use this to pin "today".
func (l *Lifecycle) WithClock(clock func() time.Time) *Lifecycle {
	l.clock = clock
	return l
}

func (l *Lifecycle) today() Date {
	return DateOf(l.clock())
}

// =============================================================================
// SUBMISSION
// =============================================================================

// SubmitInput carries a single-date submission.
type SubmitInput struct {
	StaffID string
	Date    Date
	Period  Period
}

// SubmitSingle validates and records a single-date WFH request.
// Pipeline: required fields -> window -> clash -> insert Pending.
func (l *Lifecycle) SubmitSingle(ctx context.Context, in SubmitInput) (*Request, error) {
	if in.StaffID == "" || in.Date.IsZero() {
		return nil, validationErr(MsgSubmissionFailed)
	}
	if _, err := ParsePeriod(string(in.Period)); err != nil {
		return nil, validationErr(MsgSubmissionFailed)
	}

	if err := CheckDate(in.Date, l.today()); err != nil {
		return nil, err
	}

	existing, err := l.liveEntries(ctx, in.StaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing schedule: %w", err)
	}
	if HasClash(existing, in.Date, in.Period) {
		return nil, &ConflictError{StaffID: in.StaffID, Period: in.Period, Dates: []Date{in.Date}}
	}

	req := Request{
		ID:          uuid.NewString(),
		StaffID:     in.StaffID,
		Date:        in.Date,
		Period:      in.Period,
		RequestedAt: l.clock(),
		Status:      StatusPending,
	}
	if err := l.store.InsertRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to record request: %w", err)
	}
	return &req, nil
}

// RecurringInput carries a recurring submission.
type RecurringInput struct {
	StaffID string
	Start   Date
	End     Date
	Weekday time.Weekday
	Period  Period
}

// SubmitRecurring validates and records a recurring WFH request.
// Pipeline: required fields -> window (both bounds) -> expansion -> clash
// per expanded date (conflicts accumulated) -> insert Pending.
func (l *Lifecycle) SubmitRecurring(ctx context.Context, in RecurringInput) (*RecurringRequest, error) {
	if in.StaffID == "" || in.Start.IsZero() || in.End.IsZero() {
		return nil, validationErr(MsgFillAllFields)
	}
	if _, err := ParsePeriod(string(in.Period)); err != nil {
		return nil, validationErr(MsgFillAllFields)
	}

	if err := CheckRange(in.Start, in.End, l.today()); err != nil {
		return nil, err
	}

	dates := Expand(in.Start, in.End, in.Weekday)
	if len(dates) == 0 {
		return nil, validationErr(MsgNoValidDates)
	}

	existing, err := l.liveEntries(ctx, in.StaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing schedule: %w", err)
	}
	if conflicts := CollectClashes(existing, dates, in.Period); len(conflicts) > 0 {
		return nil, &ConflictError{StaffID: in.StaffID, Period: in.Period, Dates: conflicts}
	}

	req := RecurringRequest{
		ID:          uuid.NewString(),
		StaffID:     in.StaffID,
		Start:       in.Start,
		End:         in.End,
		Weekday:     in.Weekday,
		Period:      in.Period,
		RequestedAt: l.clock(),
		Status:      StatusPending,
	}
	if err := l.store.InsertRecurring(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to record recurring request: %w", err)
	}
	return &req, nil
}

// liveEntries gathers every occupied (date, period) slot for a staff member:
// live single requests plus the expanded dates of live recurring series.
func (l *Lifecycle) liveEntries(ctx context.Context, staffID string) ([]Entry, error) {
	reqs, err := l.store.ListRequestsByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, r := range reqs {
		if r.Status.IsLive() {
			entries = append(entries, Entry{Date: r.Date, Period: r.Period})
		}
	}

	recs, err := l.store.ListRecurringByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	for _, r := range recs {
		if !r.Status.IsLive() {
			continue
		}
		for _, d := range r.Dates() {
			entries = append(entries, Entry{Date: d, Period: r.Period})
		}
	}
	return entries, nil
}

// =============================================================================
// APPROVAL / REJECTION
// =============================================================================

// Approve transitions a Pending request to Approved and stamps the decision.
func (l *Lifecycle) Approve(ctx context.Context, requestID, approverID string) (*Request, error) {
	req, err := l.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, validationErr(fmt.Sprintf("cannot approve request in status %q", req.Status))
	}

	now := l.clock()
	req.Status = StatusApproved
	req.ApproverID = approverID
	req.DecisionDate = &now
	if err := l.store.UpdateRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}
	return req, nil
}

// Reject transitions a Pending request to Rejected; Comments holds the reason.
func (l *Lifecycle) Reject(ctx context.Context, requestID, approverID, reason string) (*Request, error) {
	req, err := l.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, validationErr(fmt.Sprintf("cannot reject request in status %q", req.Status))
	}

	now := l.clock()
	req.Status = StatusRejected
	req.ApproverID = approverID
	req.Comments = reason
	req.DecisionDate = &now
	if err := l.store.UpdateRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}
	return req, nil
}

// ApproveRecurring transitions a Pending recurring series to Approved.
func (l *Lifecycle) ApproveRecurring(ctx context.Context, requestID, approverID string) (*RecurringRequest, error) {
	req, err := l.getRecurring(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, validationErr(fmt.Sprintf("cannot approve request in status %q", req.Status))
	}

	now := l.clock()
	req.Status = StatusApproved
	req.ApproverID = approverID
	req.DecisionDate = &now
	if err := l.store.UpdateRecurring(ctx, *req); err != nil {
		return nil, fmt.Errorf("failed to update recurring request: %w", err)
	}
	return req, nil
}

// RejectRecurring transitions a Pending recurring series to Rejected.
func (l *Lifecycle) RejectRecurring(ctx context.Context, requestID, approverID, reason string) (*RecurringRequest, error) {
	req, err := l.getRecurring(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, validationErr(fmt.Sprintf("cannot reject request in status %q", req.Status))
	}

	now := l.clock()
	req.Status = StatusRejected
	req.ApproverID = approverID
	req.Comments = reason
	req.DecisionDate = &now
	if err := l.store.UpdateRecurring(ctx, *req); err != nil {
		return nil, fmt.Errorf("failed to update recurring request: %w", err)
	}
	return req, nil
}

// =============================================================================
// WITHDRAWAL
// =============================================================================

// RequestWithdrawal creates a withdrawal request for an Approved WFH request
// and moves the origin to Withdrawal Pending. The staff and approver display
// fields are snapshotted (denormalized) at this point.
func (l *Lifecycle) RequestWithdrawal(ctx context.Context, requestID, reason string) (*WithdrawalRequest, error) {
	if reason == "" {
		return nil, validationErr(MsgFillAllFields)
	}

	origin, err := l.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if origin.Status != StatusApproved {
		return nil, validationErr(fmt.Sprintf("cannot withdraw request in status %q", origin.Status))
	}

	staff, err := l.store.GetEmployee(ctx, origin.StaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff member: %w", err)
	}
	if staff == nil {
		return nil, fmt.Errorf("staff member %s missing for withdrawal snapshot", origin.StaffID)
	}
	approver, err := l.store.GetEmployee(ctx, origin.ApproverID)
	if err != nil {
		return nil, fmt.Errorf("failed to load approver: %w", err)
	}
	if approver == nil {
		return nil, fmt.Errorf("approver %s missing for withdrawal snapshot", origin.ApproverID)
	}

	wd := WithdrawalRequest{
		ID:               uuid.NewString(),
		RequestID:        origin.ID,
		StaffName:        staff.FullName(),
		StaffPosition:    staff.Position,
		ApproverName:     approver.FullName(),
		ApproverPosition: approver.Position,
		Reason:           reason,
		Status:           StatusPending,
		RequestedAt:      l.clock(),
	}
	if err := l.store.InsertWithdrawal(ctx, wd); err != nil {
		return nil, fmt.Errorf("failed to record withdrawal request: %w", err)
	}

	origin.Status = StatusWithdrawalPending
	if err := l.store.UpdateRequest(ctx, *origin); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}
	return &wd, nil
}

// ApproveWithdrawal closes a pending withdrawal as Approved and moves the
// origin request to Withdrawn.
func (l *Lifecycle) ApproveWithdrawal(ctx context.Context, withdrawalID string) (*WithdrawalRequest, error) {
	wd, err := l.getWithdrawal(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if wd.Status != StatusPending {
		return nil, validationErr(fmt.Sprintf("cannot approve withdrawal in status %q", wd.Status))
	}

	origin, err := l.getRequest(ctx, wd.RequestID)
	if err != nil {
		return nil, err
	}

	wd.Status = StatusApproved
	if err := l.store.UpdateWithdrawal(ctx, *wd); err != nil {
		return nil, fmt.Errorf("failed to update withdrawal request: %w", err)
	}

	origin.Status = StatusWithdrawn
	if err := l.store.UpdateRequest(ctx, *origin); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}
	return wd, nil
}

// RejectWithdrawal closes a pending withdrawal as Rejected and reverts the
// origin request to Approved.
func (l *Lifecycle) RejectWithdrawal(ctx context.Context, withdrawalID, comment string) (*WithdrawalRequest, error) {
	wd, err := l.getWithdrawal(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if wd.Status != StatusPending {
		return nil, validationErr(fmt.Sprintf("cannot reject withdrawal in status %q", wd.Status))
	}

	origin, err := l.getRequest(ctx, wd.RequestID)
	if err != nil {
		return nil, err
	}

	wd.Status = StatusRejected
	wd.Comments = comment
	if err := l.store.UpdateWithdrawal(ctx, *wd); err != nil {
		return nil, fmt.Errorf("failed to update withdrawal request: %w", err)
	}

	origin.Status = StatusApproved
	if err := l.store.UpdateRequest(ctx, *origin); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}
	return wd, nil
}

// =============================================================================
// EXPIRE SWEEP
// =============================================================================

// ExpireSweep bulk-transitions the staff member's Approved requests whose
// WFH date has passed into Rejected, appending SweepComment. Idempotent:
// a re-run finds nothing to transition. Zero rows affected is still success.
func (l *Lifecycle) ExpireSweep(ctx context.Context, staffID string) (int64, error) {
	if staffID == "" {
		return 0, validationErr(MsgFillAllFields)
	}
	n, err := l.store.ExpireApproved(ctx, staffID, l.today(), SweepComment, l.clock())
	if err != nil {
		return 0, fmt.Errorf("failed to expire requests: %w", err)
	}
	return n, nil
}

// =============================================================================
// LOOKUP HELPERS
// =============================================================================

func (l *Lifecycle) getRequest(ctx context.Context, id string) (*Request, error) {
	req, err := l.store.GetRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load request: %w", err)
	}
	if req == nil {
		return nil, &NotFoundError{Kind: "request", ID: id}
	}
	return req, nil
}

func (l *Lifecycle) getRecurring(ctx context.Context, id string) (*RecurringRequest, error) {
	req, err := l.store.GetRecurring(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring request: %w", err)
	}
	if req == nil {
		return nil, &NotFoundError{Kind: "recurring request", ID: id}
	}
	return req, nil
}

func (l *Lifecycle) getWithdrawal(ctx context.Context, id string) (*WithdrawalRequest, error) {
	wd, err := l.store.GetWithdrawal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load withdrawal request: %w", err)
	}
	if wd == nil {
		return nil, &NotFoundError{Kind: "withdrawal request", ID: id}
	}
	return wd, nil
}
