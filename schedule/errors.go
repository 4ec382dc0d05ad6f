/*
errors.go - Centralized error types for the scheduling engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The HTTP layer maps these onto status codes without inspecting messages.

ERROR CATEGORIES:
  1. Validation errors - missing fields, out-of-window dates, empty expansion
  2. Conflict errors   - period clashes against the existing schedule
  3. Not-found errors  - unknown request/withdrawal IDs

USAGE:
  The boundary dispatches on the sentinels:

    if errors.Is(err, schedule.ErrNotFound) {
        // 404
    }

  Several user-facing messages are tested verbatim; they live here as
  constants so callers cannot drift from the contract wording.

SEE ALSO:
  - lifecycle.go: produces these errors
  - api/handlers.go: maps them to HTTP responses
*/
package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// CONTRACT MESSAGES - User-visible, compared verbatim by callers
// =============================================================================

const (
	// MsgDateOutOfWindow is returned when a single WFH date falls outside
	// the application window.
	MsgDateOutOfWindow = "Applied WFH date must be within 3 months forward or 2 months back"

	// MsgRangeOutOfWindow is the recurring-specific phrasing: either bound
	// outside the window fails the whole submission with this one message.
	MsgRangeOutOfWindow = "Applied WFH start and end date must be within 3 months forward or 2 months back"

	// MsgNoValidDates is returned when a recurring range contains no date
	// matching the requested weekday.
	MsgNoValidDates = "No valid dates found for the selected range and day of the week"

	// MsgFillAllFields is returned by the recurring submission path when
	// required fields are missing.
	MsgFillAllFields = "Please fill in all fields"

	// MsgSubmissionFailed is returned by the single submission path when
	// required fields are missing.
	MsgSubmissionFailed = "Request Submission Failed"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation marks recoverable input failures (400 at the boundary).
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks period clashes against the existing schedule.
	ErrConflict = errors.New("period clash")

	// ErrNotFound marks unknown request/withdrawal IDs (404 at the boundary).
	ErrNotFound = errors.New("not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError carries the exact user-facing message for a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationErr(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ConflictError lists every date on which the submission collides with the
// staff member's existing schedule. The single-date path carries exactly one
// date; the recurring path accumulates all of them.
type ConflictError struct {
	StaffID string
	Period  Period
	Dates   []Date
}

func (e *ConflictError) Error() string {
	lines := make([]string, len(e.Dates))
	for i, d := range e.Dates {
		lines[i] = d.String()
	}
	return "WFH request clashes with an existing request on:\n" + strings.Join(lines, "\n")
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NotFoundError identifies which record was missing.
type NotFoundError struct {
	Kind string // "request", "recurring request", "withdrawal request"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
