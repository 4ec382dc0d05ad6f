/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements schedule.Store and hierarchy.Source using SQLite. In
  production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  wfh_requests:           single-date WFH requests
  recurring_wfh_requests: weekday-pattern requests (dates derived, not stored)
  withdrawal_requests:    withdrawal workflow with denormalized snapshots
  employees:              staff records for display joins and snapshots
  manager_subordinates:   flat adjacency, one row per manager,
                          comma-separated subordinate list

UNIQUENESS:
  A partial unique index on (staff_id, wfh_date, request_period) over live
  statuses closes the identical-period submission race at the storage
  layer. FULL-vs-half overlap is not expressible as a unique index and
  stays an application-level check.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL for
  better read concurrency and crash recovery.

LIFECYCLE:
  New() opens the database and migrates the schema; Close() releases the
  connection. The connection is scoped to the process lifetime (opened on
  start, closed on shutdown signal), never ambient package state.

USAGE:
  st, err := sqlite.New("./data/wfh.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

  lc := schedule.NewLifecycle(st)

SEE ALSO:
  - schedule/store.go: interface definitions
  - schedule/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/wfh-engine/hierarchy"
	"github.com/warp/wfh-engine/schedule"
)

// Store implements schedule.Store and hierarchy.Source using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Single-date WFH requests
	CREATE TABLE IF NOT EXISTS wfh_requests (
		request_id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL,
		wfh_date TEXT NOT NULL,
		request_period TEXT NOT NULL,
		request_date TEXT NOT NULL,
		status TEXT NOT NULL,
		approver_id TEXT,
		comments TEXT,
		decision_date TEXT,
		recurring_request_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_wfh_requests_staff
		ON wfh_requests(staff_id, wfh_date);
	CREATE INDEX IF NOT EXISTS idx_wfh_requests_status
		ON wfh_requests(status);

	-- Close the identical-period submission race for live rows.
	-- FULL-vs-half overlap cannot be a unique index; it stays an
	-- application-level check.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_wfh_requests_live_slot
		ON wfh_requests(staff_id, wfh_date, request_period)
		WHERE status IN ('Pending', 'Approved', 'Withdrawal Pending');

	-- Recurring requests (concrete dates derived at read time)
	CREATE TABLE IF NOT EXISTS recurring_wfh_requests (
		request_id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL,
		wfh_date_start TEXT NOT NULL,
		wfh_date_end TEXT NOT NULL,
		wfh_day INTEGER NOT NULL,
		request_period TEXT NOT NULL,
		request_date TEXT NOT NULL,
		status TEXT NOT NULL,
		approver_id TEXT,
		comments TEXT,
		decision_date TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_recurring_requests_staff
		ON recurring_wfh_requests(staff_id);

	-- Withdrawal workflow; staff/approver fields are denormalized
	-- snapshots taken at submission time
	CREATE TABLE IF NOT EXISTS withdrawal_requests (
		withdrawal_id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		staff_name TEXT NOT NULL,
		staff_position TEXT,
		approver_name TEXT,
		approver_position TEXT,
		request_reason TEXT NOT NULL,
		status TEXT NOT NULL,
		comments TEXT,
		request_date TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_withdrawal_requests_request
		ON withdrawal_requests(request_id);

	-- Employees (display joins and snapshots only)
	CREATE TABLE IF NOT EXISTS employees (
		staff_id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		position TEXT,
		dept_id TEXT,
		role_id TEXT,
		reporting_manager TEXT
	);

	-- Flat manager adjacency; subordinates is a comma-separated set
	CREATE TABLE IF NOT EXISTS manager_subordinates (
		manager_id TEXT PRIMARY KEY,
		subordinates TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// REQUEST STORE (schedule.RequestStore interface)
// =============================================================================

// InsertRequest records a new single-date request.
func (s *Store) InsertRequest(ctx context.Context, req schedule.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO wfh_requests
		(request_id, staff_id, wfh_date, request_period, request_date, status,
		 approver_id, comments, decision_date, recurring_request_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		req.ID,
		req.StaffID,
		req.Date.String(),
		string(req.Period),
		req.RequestedAt.UTC().Format(time.RFC3339),
		string(req.Status),
		nullString(req.ApproverID),
		nullString(req.Comments),
		nullTime(req.DecisionDate),
		nullString(req.RecurringID),
	)
	if err != nil {
		if IsUniqueConstraintError(err) {
			// Lost a submission race on the live-slot index: the slot is
			// already taken, so surface it as a clash.
			return &schedule.ConflictError{
				StaffID: req.StaffID,
				Period:  req.Period,
				Dates:   []schedule.Date{req.Date},
			}
		}
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

// GetRequest returns nil, nil when the ID is unknown.
func (s *Store) GetRequest(ctx context.Context, id string) (*schedule.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectRequest+` WHERE request_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query request: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	req, err := scanRequest(rows)
	if err != nil {
		return nil, err
	}
	return &req, rows.Err()
}

// UpdateRequest overwrites the mutable fields of a request.
func (s *Store) UpdateRequest(ctx context.Context, req schedule.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE wfh_requests
		SET status = ?, approver_id = ?, comments = ?, decision_date = ?
		WHERE request_id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		string(req.Status),
		nullString(req.ApproverID),
		nullString(req.Comments),
		nullTime(req.DecisionDate),
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update touched no rows for request %s", req.ID)
	}
	return nil
}

// DeleteRequest physically removes a request.
func (s *Store) DeleteRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM wfh_requests WHERE request_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	return nil
}

// ListRequestsByStaff returns all single requests for a staff member,
// ordered by WFH date.
func (s *Store) ListRequestsByStaff(ctx context.Context, staffID string) ([]schedule.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRequest + ` WHERE staff_id = ? ORDER BY wfh_date ASC, request_date ASC`
	rows, err := s.db.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var result []schedule.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

const selectRequest = `
	SELECT request_id, staff_id, wfh_date, request_period, request_date,
	       status, approver_id, comments, decision_date, recurring_request_id
	FROM wfh_requests`

func scanRequest(rows *sql.Rows) (schedule.Request, error) {
	var (
		req          schedule.Request
		wfhDate      string
		requestDate  string
		approverID   sql.NullString
		comments     sql.NullString
		decisionDate sql.NullString
		recurringID  sql.NullString
	)

	err := rows.Scan(
		&req.ID, &req.StaffID, &wfhDate, &req.Period, &requestDate,
		&req.Status, &approverID, &comments, &decisionDate, &recurringID,
	)
	if err != nil {
		return req, fmt.Errorf("failed to scan request: %w", err)
	}

	if req.Date, err = schedule.ParseDate(wfhDate); err != nil {
		return req, fmt.Errorf("bad wfh_date for request %s: %w", req.ID, err)
	}
	if req.RequestedAt, err = time.Parse(time.RFC3339, requestDate); err != nil {
		return req, fmt.Errorf("bad request_date for request %s: %w", req.ID, err)
	}
	req.ApproverID = approverID.String
	req.Comments = comments.String
	req.RecurringID = recurringID.String
	if decisionDate.Valid {
		t, err := time.Parse(time.RFC3339, decisionDate.String)
		if err != nil {
			return req, fmt.Errorf("bad decision_date for request %s: %w", req.ID, err)
		}
		req.DecisionDate = &t
	}
	return req, nil
}

// =============================================================================
// RECURRING REQUESTS
// =============================================================================

// InsertRecurring records a new recurring series.
func (s *Store) InsertRecurring(ctx context.Context, req schedule.RecurringRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO recurring_wfh_requests
		(request_id, staff_id, wfh_date_start, wfh_date_end, wfh_day,
		 request_period, request_date, status, approver_id, comments, decision_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		req.ID,
		req.StaffID,
		req.Start.String(),
		req.End.String(),
		int(req.Weekday),
		string(req.Period),
		req.RequestedAt.UTC().Format(time.RFC3339),
		string(req.Status),
		nullString(req.ApproverID),
		nullString(req.Comments),
		nullTime(req.DecisionDate),
	)
	if err != nil {
		return fmt.Errorf("failed to insert recurring request: %w", err)
	}
	return nil
}

// GetRecurring returns nil, nil when the ID is unknown.
func (s *Store) GetRecurring(ctx context.Context, id string) (*schedule.RecurringRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectRecurring+` WHERE request_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring request: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	req, err := scanRecurring(rows)
	if err != nil {
		return nil, err
	}
	return &req, rows.Err()
}

// UpdateRecurring overwrites the mutable fields of a recurring series.
func (s *Store) UpdateRecurring(ctx context.Context, req schedule.RecurringRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE recurring_wfh_requests
		SET status = ?, approver_id = ?, comments = ?, decision_date = ?
		WHERE request_id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		string(req.Status),
		nullString(req.ApproverID),
		nullString(req.Comments),
		nullTime(req.DecisionDate),
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update touched no rows for recurring request %s", req.ID)
	}
	return nil
}

// ListRecurringByStaff returns all recurring series for a staff member.
func (s *Store) ListRecurringByStaff(ctx context.Context, staffID string) ([]schedule.RecurringRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRecurring + ` WHERE staff_id = ? ORDER BY wfh_date_start ASC`
	rows, err := s.db.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring requests: %w", err)
	}
	defer rows.Close()

	var result []schedule.RecurringRequest
	for rows.Next() {
		req, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

const selectRecurring = `
	SELECT request_id, staff_id, wfh_date_start, wfh_date_end, wfh_day,
	       request_period, request_date, status, approver_id, comments, decision_date
	FROM recurring_wfh_requests`

func scanRecurring(rows *sql.Rows) (schedule.RecurringRequest, error) {
	var (
		req          schedule.RecurringRequest
		start        string
		end          string
		weekday      int
		requestDate  string
		approverID   sql.NullString
		comments     sql.NullString
		decisionDate sql.NullString
	)

	err := rows.Scan(
		&req.ID, &req.StaffID, &start, &end, &weekday,
		&req.Period, &requestDate, &req.Status, &approverID, &comments, &decisionDate,
	)
	if err != nil {
		return req, fmt.Errorf("failed to scan recurring request: %w", err)
	}

	if req.Start, err = schedule.ParseDate(start); err != nil {
		return req, fmt.Errorf("bad wfh_date_start for request %s: %w", req.ID, err)
	}
	if req.End, err = schedule.ParseDate(end); err != nil {
		return req, fmt.Errorf("bad wfh_date_end for request %s: %w", req.ID, err)
	}
	if req.Weekday, err = schedule.ParseWeekday(weekday); err != nil {
		return req, fmt.Errorf("bad wfh_day for request %s: %w", req.ID, err)
	}
	if req.RequestedAt, err = time.Parse(time.RFC3339, requestDate); err != nil {
		return req, fmt.Errorf("bad request_date for request %s: %w", req.ID, err)
	}
	req.ApproverID = approverID.String
	req.Comments = comments.String
	if decisionDate.Valid {
		t, err := time.Parse(time.RFC3339, decisionDate.String)
		if err != nil {
			return req, fmt.Errorf("bad decision_date for request %s: %w", req.ID, err)
		}
		req.DecisionDate = &t
	}
	return req, nil
}

// =============================================================================
// EXPIRE SWEEP
// =============================================================================

// ExpireApproved bulk-transitions past-dated Approved requests to Rejected
// in a single multi-row update scoped to one staff ID. Re-applying finds
// nothing to transition: the WHERE clause only matches rows still Approved.
func (s *Store) ExpireApproved(ctx context.Context, staffID string, before schedule.Date, comment string, decidedAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE wfh_requests
		SET status = ?,
		    comments = CASE
		        WHEN comments IS NULL OR comments = '' THEN ?
		        ELSE comments || char(10) || ?
		    END,
		    decision_date = ?
		WHERE staff_id = ? AND status = ? AND wfh_date < ?
	`
	res, err := s.db.ExecContext(ctx, query,
		string(schedule.StatusRejected),
		comment, comment,
		decidedAt.UTC().Format(time.RFC3339),
		staffID,
		string(schedule.StatusApproved),
		before.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire requests: %w", err)
	}
	return res.RowsAffected()
}

// StaffWithApprovedBefore lists distinct staff IDs holding Approved requests
// dated strictly before the given date. The sweep scheduler uses this to
// scope per-staff sweeps.
func (s *Store) StaffWithApprovedBefore(ctx context.Context, before schedule.Date) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT DISTINCT staff_id FROM wfh_requests
		WHERE status = ? AND wfh_date < ?
		ORDER BY staff_id
	`
	rows, err := s.db.QueryContext(ctx, query, string(schedule.StatusApproved), before.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring staff: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan staff id: %w", err)
		}
		result = append(result, id)
	}
	return result, rows.Err()
}

// =============================================================================
// WITHDRAWAL STORE (schedule.WithdrawalStore interface)
// =============================================================================

// InsertWithdrawal records a new withdrawal request.
func (s *Store) InsertWithdrawal(ctx context.Context, wd schedule.WithdrawalRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO withdrawal_requests
		(withdrawal_id, request_id, staff_name, staff_position,
		 approver_name, approver_position, request_reason, status, comments, request_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		wd.ID,
		wd.RequestID,
		wd.StaffName,
		nullString(wd.StaffPosition),
		nullString(wd.ApproverName),
		nullString(wd.ApproverPosition),
		wd.Reason,
		string(wd.Status),
		nullString(wd.Comments),
		wd.RequestedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert withdrawal request: %w", err)
	}
	return nil
}

// GetWithdrawal returns nil, nil when the ID is unknown.
func (s *Store) GetWithdrawal(ctx context.Context, id string) (*schedule.WithdrawalRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT withdrawal_id, request_id, staff_name, staff_position,
		       approver_name, approver_position, request_reason, status, comments, request_date
		FROM withdrawal_requests
		WHERE withdrawal_id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)

	var (
		wd               schedule.WithdrawalRequest
		staffPosition    sql.NullString
		approverName     sql.NullString
		approverPosition sql.NullString
		comments         sql.NullString
		requestDate      string
	)
	err := row.Scan(
		&wd.ID, &wd.RequestID, &wd.StaffName, &staffPosition,
		&approverName, &approverPosition, &wd.Reason, &wd.Status, &comments, &requestDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan withdrawal request: %w", err)
	}

	wd.StaffPosition = staffPosition.String
	wd.ApproverName = approverName.String
	wd.ApproverPosition = approverPosition.String
	wd.Comments = comments.String
	if wd.RequestedAt, err = time.Parse(time.RFC3339, requestDate); err != nil {
		return nil, fmt.Errorf("bad request_date for withdrawal %s: %w", wd.ID, err)
	}
	return &wd, nil
}

// UpdateWithdrawal overwrites the mutable fields of a withdrawal request.
func (s *Store) UpdateWithdrawal(ctx context.Context, wd schedule.WithdrawalRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE withdrawal_requests
		SET status = ?, comments = ?
		WHERE withdrawal_id = ?
	`
	res, err := s.db.ExecContext(ctx, query, string(wd.Status), nullString(wd.Comments), wd.ID)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update touched no rows for withdrawal %s", wd.ID)
	}
	return nil
}

// =============================================================================
// EMPLOYEE STORE (schedule.EmployeeStore interface)
// =============================================================================

// GetEmployee returns nil, nil when the staff ID is unknown.
func (s *Store) GetEmployee(ctx context.Context, staffID string) (*schedule.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT staff_id, first_name, last_name, position, dept_id, role_id, reporting_manager
		FROM employees
		WHERE staff_id = ?
	`
	row := s.db.QueryRowContext(ctx, query, staffID)

	var (
		e                schedule.Employee
		position         sql.NullString
		deptID           sql.NullString
		roleID           sql.NullString
		reportingManager sql.NullString
	)
	err := row.Scan(&e.StaffID, &e.FirstName, &e.LastName, &position, &deptID, &roleID, &reportingManager)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}

	e.Position = position.String
	e.DeptID = deptID.String
	e.RoleID = roleID.String
	e.ReportingManager = reportingManager.String
	return &e, nil
}

// SaveEmployee inserts or replaces an employee record.
func (s *Store) SaveEmployee(ctx context.Context, e schedule.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT OR REPLACE INTO employees
		(staff_id, first_name, last_name, position, dept_id, role_id, reporting_manager)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.StaffID, e.FirstName, e.LastName,
		nullString(e.Position), nullString(e.DeptID), nullString(e.RoleID),
		nullString(e.ReportingManager),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// =============================================================================
// HIERARCHY SOURCE (hierarchy.Source interface)
// =============================================================================

// SaveSubordinates inserts or replaces the raw comma-separated subordinate
// list for a manager.
func (s *Store) SaveSubordinates(ctx context.Context, managerID, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `INSERT OR REPLACE INTO manager_subordinates (manager_id, subordinates) VALUES (?, ?)`
	if _, err := s.db.ExecContext(ctx, query, managerID, raw); err != nil {
		return fmt.Errorf("failed to save subordinates: %w", err)
	}
	return nil
}

// Adjacency loads the full adjacency table, parsing each comma-separated
// list once into the resolver's set form.
func (s *Store) Adjacency(ctx context.Context) (hierarchy.Adjacency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT manager_id, subordinates FROM manager_subordinates`)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjacency: %w", err)
	}
	defer rows.Close()

	adj := make(hierarchy.Adjacency)
	for rows.Next() {
		var managerID, raw string
		if err := rows.Scan(&managerID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan adjacency row: %w", err)
		}
		adj[hierarchy.CanonicalID(managerID)] = hierarchy.ParseSubordinates(managerID, raw)
	}
	return adj, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// IsUniqueConstraintError reports whether the error came from a unique
// index, e.g. two concurrent submissions for the same staff/date/period.
func IsUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
