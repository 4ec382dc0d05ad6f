/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. The persisted field
  names (Request_ID, Staff_ID, WFH_Date, ...) and the literal status and
  period strings are part of the external contract: they are echoed to
  callers verbatim and compared case-sensitively, so the JSON tags below
  reproduce them exactly.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Body: Request body types from clients

VALIDATION:
  Validation is done in handlers and the lifecycle service, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/types.go: The domain types these project
*/
package api

import (
	"time"

	"github.com/warp/wfh-engine/schedule"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// RequestDTO represents a single-date WFH request in API responses.
type RequestDTO struct {
	RequestID          string  `json:"Request_ID"`
	StaffID            string  `json:"Staff_ID"`
	WFHDate            string  `json:"WFH_Date"`
	RequestPeriod      string  `json:"Request_Period"`
	RequestDate        string  `json:"Request_Date"`
	Status             string  `json:"Status"`
	ApproverID         string  `json:"Approver_ID,omitempty"`
	Comments           string  `json:"Comments,omitempty"`
	DecisionDate       *string `json:"Decision_Date,omitempty"`
	RecurringRequestID string  `json:"Recurring_Request_ID,omitempty"`
}

func toRequestDTO(r schedule.Request) RequestDTO {
	return RequestDTO{
		RequestID:          r.ID,
		StaffID:            r.StaffID,
		WFHDate:            r.Date.String(),
		RequestPeriod:      string(r.Period),
		RequestDate:        r.RequestedAt.UTC().Format(time.RFC3339),
		Status:             string(r.Status),
		ApproverID:         r.ApproverID,
		Comments:           r.Comments,
		DecisionDate:       formatDecision(r.DecisionDate),
		RecurringRequestID: r.RecurringID,
	}
}

// RecurringRequestDTO represents a recurring series in API responses.
type RecurringRequestDTO struct {
	RequestID     string   `json:"Request_ID"`
	StaffID       string   `json:"Staff_ID"`
	WFHDateStart  string   `json:"WFH_Date_Start"`
	WFHDateEnd    string   `json:"WFH_Date_End"`
	WFHDay        int      `json:"WFH_Day"`
	RequestPeriod string   `json:"Request_Period"`
	RequestDate   string   `json:"Request_Date"`
	Status        string   `json:"Status"`
	ApproverID    string   `json:"Approver_ID,omitempty"`
	Comments      string   `json:"Comments,omitempty"`
	DecisionDate  *string  `json:"Decision_Date,omitempty"`
	Dates         []string `json:"Dates,omitempty"`
}

func toRecurringDTO(r schedule.RecurringRequest) RecurringRequestDTO {
	dto := RecurringRequestDTO{
		RequestID:     r.ID,
		StaffID:       r.StaffID,
		WFHDateStart:  r.Start.String(),
		WFHDateEnd:    r.End.String(),
		WFHDay:        int(r.Weekday),
		RequestPeriod: string(r.Period),
		RequestDate:   r.RequestedAt.UTC().Format(time.RFC3339),
		Status:        string(r.Status),
		ApproverID:    r.ApproverID,
		Comments:      r.Comments,
		DecisionDate:  formatDecision(r.DecisionDate),
	}
	for _, d := range r.Dates() {
		dto.Dates = append(dto.Dates, d.String())
	}
	return dto
}

// WithdrawalDTO represents a withdrawal request in API responses.
type WithdrawalDTO struct {
	WithdrawalID     string `json:"Withdrawal_ID"`
	RequestID        string `json:"Request_ID"`
	StaffName        string `json:"Staff_Name"`
	StaffPosition    string `json:"Staff_Position,omitempty"`
	ApproverName     string `json:"Approver_Name,omitempty"`
	ApproverPosition string `json:"Approver_Position,omitempty"`
	RequestReason    string `json:"Request_Reason"`
	Status           string `json:"Status"`
	Comments         string `json:"Comments,omitempty"`
}

func toWithdrawalDTO(w schedule.WithdrawalRequest) WithdrawalDTO {
	return WithdrawalDTO{
		WithdrawalID:     w.ID,
		RequestID:        w.RequestID,
		StaffName:        w.StaffName,
		StaffPosition:    w.StaffPosition,
		ApproverName:     w.ApproverName,
		ApproverPosition: w.ApproverPosition,
		RequestReason:    w.Reason,
		Status:           string(w.Status),
		Comments:         w.Comments,
	}
}

// SubordinatesDTO is the transitive subordinate set for a manager.
type SubordinatesDTO struct {
	ManagerID    string   `json:"Manager_ID"`
	Subordinates []string `json:"Subordinates"`
}

// ScheduleEntryDTO is one dated slot in a team-schedule response.
type ScheduleEntryDTO struct {
	WFHDate            string `json:"WFH_Date"`
	RequestPeriod      string `json:"Request_Period"`
	Status             string `json:"Status"`
	RecurringRequestID string `json:"Recurring_Request_ID,omitempty"`
}

// StaffSummaryDTO is the per-staff rollup in a team-schedule response.
// Day totals are decimal strings (AM/PM weigh 0.5, FULL weighs 1).
type StaffSummaryDTO struct {
	StaffID       string             `json:"Staff_ID"`
	ConfirmedDays string             `json:"Confirmed_Days"`
	TentativeDays string             `json:"Tentative_Days"`
	Entries       []ScheduleEntryDTO `json:"Entries"`
}

func toStaffSummaryDTO(s schedule.StaffSummary) StaffSummaryDTO {
	dto := StaffSummaryDTO{
		StaffID:       s.StaffID,
		ConfirmedDays: s.ConfirmedDays.String(),
		TentativeDays: s.TentativeDays.String(),
	}
	for _, e := range s.Entries {
		dto.Entries = append(dto.Entries, ScheduleEntryDTO{
			WFHDate:            e.Date.String(),
			RequestPeriod:      string(e.Period),
			Status:             string(e.Status),
			RecurringRequestID: e.RecurringID,
		})
	}
	return dto
}

// TeamScheduleDTO is the full team-schedule response.
type TeamScheduleDTO struct {
	ManagerID string            `json:"Manager_ID"`
	From      string            `json:"From"`
	To        string            `json:"To"`
	Staff     []StaffSummaryDTO `json:"Staff"`
}

// =============================================================================
// REQUEST BODY TYPES
// =============================================================================

// SubmitRequestBody is the body for a single-date submission.
type SubmitRequestBody struct {
	StaffID       string `json:"Staff_ID"`
	WFHDate       string `json:"WFH_Date"`
	RequestPeriod string `json:"Request_Period"`
}

// SubmitRecurringBody is the body for a recurring submission. WFH_Day uses
// the canonical 0-6 encoding (0 = Sunday); a pointer distinguishes a
// missing field from Sunday.
type SubmitRecurringBody struct {
	StaffID       string `json:"Staff_ID"`
	WFHDateStart  string `json:"WFH_Date_Start"`
	WFHDateEnd    string `json:"WFH_Date_End"`
	WFHDay        *int   `json:"WFH_Day"`
	RequestPeriod string `json:"Request_Period"`
}

// RejectBody carries the rejection reason.
type RejectBody struct {
	Reason string `json:"Reason"`
}

// WithdrawBody carries the withdrawal reason.
type WithdrawBody struct {
	RequestReason string `json:"Request_Reason"`
}

// WithdrawalDecisionBody carries an optional comment on a withdrawal decision.
type WithdrawalDecisionBody struct {
	Comments string `json:"Comments"`
}

// =============================================================================
// ERROR/MESSAGE SHAPES
// =============================================================================

// MessageResponse is the body for 400 and 404 responses, and for bulk
// operation success messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// InternalErrorResponse is the body for unexpected 500 responses.
type InternalErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

func formatDecision(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
