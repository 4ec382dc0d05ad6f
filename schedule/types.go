/*
Package schedule provides the core WFH scheduling and conflict-resolution engine.

PURPOSE:
  This package contains the domain types and algorithms for managing
  work-from-home requests: the application date window, AM/PM/FULL period
  clash detection, recurring weekday expansion, and the request lifecycle
  state machine (submission, approval, rejection, withdrawal, expiry).

KEY CONCEPTS IN THIS FILE (types.go):
  - Period: AM (morning half), PM (afternoon half), or FULL (whole day)
  - Status: the five lifecycle states a request can be in
  - Request / RecurringRequest / WithdrawalRequest: the persisted entities
  - Entry: a (date, period) pair, the unit of clash checking

DESIGN PRINCIPLES:
  1. Pure core: window, clash, and expansion logic operate on plain data
     (dates, slices, maps) with no storage or HTTP knowledge
  2. Explicit collaborators: the lifecycle service receives its Store via
     dependency passing, never via package-level state
  3. Verbatim contract strings: status and period literals are echoed to
     callers and compared case-sensitively, so they are defined once here

USAGE:
  lc := schedule.NewLifecycle(store)
  req, err := lc.SubmitSingle(ctx, schedule.SubmitInput{
      StaffID: "150123",
      Date:    schedule.NewDate(2024, time.October, 5),
      Period:  schedule.PeriodAM,
  })

SEE ALSO:
  - window.go: application window policy
  - clash.go: period clash detection
  - recur.go: recurring weekday expansion
  - lifecycle.go: state machine and services
*/
package schedule

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - AM / PM / FULL
// =============================================================================

// Period identifies which part of the day a request covers. The literals are
// part of the external contract and are compared case-sensitively.
type Period string

const (
	PeriodAM   Period = "AM"
	PeriodPM   Period = "PM"
	PeriodFull Period = "FULL"
)

// ParsePeriod validates a raw period string from the boundary.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodAM, PeriodPM, PeriodFull:
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q (want AM, PM or FULL)", s)
}

// =============================================================================
// STATUS - Request lifecycle states
// =============================================================================

// Status is the lifecycle state of a request. The literals (including the
// space in "Withdrawal Pending") are part of the external contract.
type Status string

const (
	StatusPending           Status = "Pending"
	StatusApproved          Status = "Approved"
	StatusRejected          Status = "Rejected"
	StatusWithdrawalPending Status = "Withdrawal Pending"
	StatusWithdrawn         Status = "Withdrawn"
)

// IsLive reports whether a request in this status still occupies its date
// slot for clash-checking purposes. Rejected and Withdrawn requests free
// the slot.
func (s Status) IsLive() bool {
	switch s {
	case StatusPending, StatusApproved, StatusWithdrawalPending:
		return true
	}
	return false
}

// =============================================================================
// REQUEST - A single-date WFH request
// =============================================================================

type Request struct {
	ID          string
	StaffID     string
	Date        Date
	Period      Period
	RequestedAt time.Time
	Status      Status
	ApproverID  string
	Comments    string

	// DecisionDate is nil until an approver acts on the request.
	DecisionDate *time.Time

	// RecurringID links back to the recurring series this request was
	// expanded from, if any.
	RecurringID string
}

// =============================================================================
// RECURRING REQUEST - A weekday pattern over an inclusive date range
// =============================================================================

// RecurringRequest owns a derived, non-persisted sequence of concrete dates
// (see Dates), each of which behaves like an individual Request for
// clash-checking purposes.
type RecurringRequest struct {
	ID           string
	StaffID      string
	Start        Date
	End          Date
	Weekday      time.Weekday // canonical encoding: 0=Sunday .. 6=Saturday
	Period       Period
	RequestedAt  time.Time
	Status       Status
	ApproverID   string
	Comments     string
	DecisionDate *time.Time
}

// Dates expands the series into its concrete calendar dates.
func (r RecurringRequest) Dates() []Date {
	return Expand(r.Start, r.End, r.Weekday)
}

// =============================================================================
// WITHDRAWAL REQUEST - Withdrawal of an approved request
// =============================================================================

// WithdrawalRequest is created only from an Approved Request. The staff and
// approver display fields are a denormalized snapshot taken at submission
// time; the RequestID back-reference is weak (the origin may already have
// been mutated).
type WithdrawalRequest struct {
	ID               string
	RequestID        string
	StaffName        string
	StaffPosition    string
	ApproverName     string
	ApproverPosition string
	Reason           string
	Status           Status
	Comments         string
	RequestedAt      time.Time
}

// =============================================================================
// EMPLOYEE - Display joins and snapshot source only
// =============================================================================

// Employee is used for display joins and withdrawal snapshots; it plays no
// part in the scheduling algorithms.
type Employee struct {
	StaffID          string
	FirstName        string
	LastName         string
	Position         string
	DeptID           string
	RoleID           string
	ReportingManager string // empty = reports to nobody
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// =============================================================================
// ENTRY - The unit of clash checking
// =============================================================================

// Entry is an occupied (date, period) slot in a staff member's schedule.
type Entry struct {
	Date   Date
	Period Period
}
