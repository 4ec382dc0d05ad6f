/*
store.go - Persistence interfaces for the scheduling engine

PURPOSE:
  Defines the interface between the lifecycle service and the database.
  Different implementations can use SQLite or in-memory storage.

KEY INTERFACES:
  RequestStore:    single and recurring request persistence
  WithdrawalStore: withdrawal request persistence
  EmployeeStore:   employee lookups for display joins and snapshots
  Store:           the union consumed by the Lifecycle service

LOOKUP CONTRACT:
  Get* methods return (nil, nil) for a missing record; the lifecycle
  service converts that into NotFoundError. Storage errors are returned
  as-is and surface as internal failures at the boundary.

CONCURRENCY:
  The store is the sole point of shared mutable state. Two concurrent
  submissions that both pass clash detection against a stale read can both
  succeed; the SQLite implementation narrows (but does not close) that
  window with a partial unique index on live (staff, date, period) rows.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: production SQLite
  - schedule/store/memory.go: in-memory for testing

SEE ALSO:
  - lifecycle.go: the consumer of these interfaces
*/
package schedule

import (
	"context"
	"time"
)

// RequestStore persists single and recurring WFH requests.
type RequestStore interface {
	InsertRequest(ctx context.Context, req Request) error

	// GetRequest returns (nil, nil) when the ID is unknown.
	GetRequest(ctx context.Context, id string) (*Request, error)

	UpdateRequest(ctx context.Context, req Request) error

	// DeleteRequest physically removes a request. Deletion is supported but
	// independent of lifecycle correctness.
	DeleteRequest(ctx context.Context, id string) error

	// ListRequestsByStaff returns all single requests for a staff member,
	// ordered by WFH date ascending.
	ListRequestsByStaff(ctx context.Context, staffID string) ([]Request, error)

	InsertRecurring(ctx context.Context, req RecurringRequest) error
	GetRecurring(ctx context.Context, id string) (*RecurringRequest, error)
	UpdateRecurring(ctx context.Context, req RecurringRequest) error
	ListRecurringByStaff(ctx context.Context, staffID string) ([]RecurringRequest, error)

	// ExpireApproved bulk-transitions the staff member's Approved requests
	// dated strictly before the cutoff into Rejected, appending the comment
	// and stamping the decision time. Returns the number of rows changed.
	// Idempotent: rows already Rejected (or in any other status) are not
	// touched, so a re-run finds nothing to transition.
	ExpireApproved(ctx context.Context, staffID string, before Date, comment string, decidedAt time.Time) (int64, error)
}

// WithdrawalStore persists withdrawal requests.
type WithdrawalStore interface {
	InsertWithdrawal(ctx context.Context, wd WithdrawalRequest) error

	// GetWithdrawal returns (nil, nil) when the ID is unknown.
	GetWithdrawal(ctx context.Context, id string) (*WithdrawalRequest, error)

	UpdateWithdrawal(ctx context.Context, wd WithdrawalRequest) error
}

// EmployeeStore provides employee lookups.
type EmployeeStore interface {
	// GetEmployee returns (nil, nil) when the staff ID is unknown.
	GetEmployee(ctx context.Context, staffID string) (*Employee, error)
}

// Store is the full persistence surface the Lifecycle service depends on.
type Store interface {
	RequestStore
	WithdrawalStore
	EmployeeStore
}
