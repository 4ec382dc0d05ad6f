/*
handlers.go - HTTP API handlers for the WFH scheduling engine

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Requests:
    POST   /api/requests                submit single WFH request
    POST   /api/requests/recurring      submit recurring WFH request
    GET    /api/requests/{id}           fetch request (single or recurring)
    DELETE /api/requests/{id}           delete request
    POST   /api/requests/{id}/approve   approve
    POST   /api/requests/{id}/reject    reject (reason required)
    POST   /api/requests/{id}/withdraw  create withdrawal request

  Withdrawals:
    POST   /api/withdrawals/{id}/approve
    POST   /api/withdrawals/{id}/reject

  Staff:
    GET    /api/staff/{id}/requests     staff schedule
    POST   /api/staff/{id}/expire-sweep expire past approved requests

  Managers:
    GET    /api/managers/{id}/subordinates   transitive subordinate set
    GET    /api/managers/{id}/team-schedule  per-staff day totals (?from=&to=)

ERROR HANDLING:
  Domain errors map onto HTTP status without message inspection:
  - 400: validation failures and period clashes, body { message }
  - 404: unknown request/withdrawal IDs, body { message: "Request not found" }
  - 500: unexpected failures, body { error: true, message, stack }

IDENTITY:
  The X-Staff-ID header supplies the acting staff ID (approver). It is
  assumed present and trustworthy; authentication is out of scope.

SEE ALSO:
  - dto.go: request/response data structures
  - server.go: router setup and middleware
  - schedule/lifecycle.go: the domain logic behind these handlers
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/warp/wfh-engine/hierarchy"
	"github.com/warp/wfh-engine/schedule"
)

// Store is the persistence surface the HTTP layer depends on: the
// scheduling store plus the hierarchy adjacency and the sweep source used
// by the background scheduler.
type Store interface {
	schedule.Store
	hierarchy.Source

	// StaffWithApprovedBefore lists staff IDs that still have Approved
	// requests dated strictly before the cutoff.
	StaffWithApprovedBefore(ctx context.Context, before schedule.Date) ([]string, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     Store
	Lifecycle *schedule.Lifecycle
	Log       *logrus.Logger
}

// NewHandler creates a handler with the given store.
func NewHandler(store Store, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		Store:     store,
		Lifecycle: schedule.NewLifecycle(store),
		Log:       log,
	}
}

const headerStaffID = "X-Staff-ID"

// =============================================================================
// SUBMISSION HANDLERS
// =============================================================================

// SubmitRequest handles a single-date submission.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var body SubmitRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, schedule.MsgSubmissionFailed)
		return
	}
	if body.StaffID == "" || body.WFHDate == "" || body.RequestPeriod == "" {
		writeMessage(w, http.StatusBadRequest, schedule.MsgSubmissionFailed)
		return
	}

	date, err := schedule.ParseDate(body.WFHDate)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, schedule.MsgSubmissionFailed)
		return
	}

	req, err := h.Lifecycle.SubmitSingle(r.Context(), schedule.SubmitInput{
		StaffID: body.StaffID,
		Date:    date,
		Period:  schedule.Period(body.RequestPeriod),
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequestDTO(*req))
}

// SubmitRecurring handles a recurring submission.
func (h *Handler) SubmitRecurring(w http.ResponseWriter, r *http.Request) {
	var body SubmitRecurringBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, schedule.MsgFillAllFields)
		return
	}
	if body.StaffID == "" || body.WFHDateStart == "" || body.WFHDateEnd == "" ||
		body.WFHDay == nil || body.RequestPeriod == "" {
		writeMessage(w, http.StatusBadRequest, schedule.MsgFillAllFields)
		return
	}

	start, err := schedule.ParseDate(body.WFHDateStart)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, schedule.MsgFillAllFields)
		return
	}
	end, err := schedule.ParseDate(body.WFHDateEnd)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, schedule.MsgFillAllFields)
		return
	}
	weekday, err := schedule.ParseWeekday(*body.WFHDay)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := h.Lifecycle.SubmitRecurring(r.Context(), schedule.RecurringInput{
		StaffID: body.StaffID,
		Start:   start,
		End:     end,
		Weekday: weekday,
		Period:  schedule.Period(body.RequestPeriod),
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecurringDTO(*req))
}

// =============================================================================
// LOOKUP / DELETE HANDLERS
// =============================================================================

// GetRequest returns a single or recurring request by ID.
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := h.Store.GetRequest(r.Context(), id)
	if err != nil {
		h.writeInternal(w, err)
		return
	}
	if req != nil {
		writeJSON(w, http.StatusOK, toRequestDTO(*req))
		return
	}

	rec, err := h.Store.GetRecurring(r.Context(), id)
	if err != nil {
		h.writeInternal(w, err)
		return
	}
	if rec != nil {
		writeJSON(w, http.StatusOK, toRecurringDTO(*rec))
		return
	}
	writeMessage(w, http.StatusNotFound, "Request not found")
}

// DeleteRequest physically removes a single request.
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := h.Store.GetRequest(r.Context(), id)
	if err != nil {
		h.writeInternal(w, err)
		return
	}
	if req == nil {
		writeMessage(w, http.StatusNotFound, "Request not found")
		return
	}
	if err := h.Store.DeleteRequest(r.Context(), id); err != nil {
		h.writeInternal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Request deleted"})
}

// ListStaffRequests returns a staff member's single and recurring requests.
func (h *Handler) ListStaffRequests(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "id")

	reqs, err := h.Store.ListRequestsByStaff(r.Context(), staffID)
	if err != nil {
		h.writeInternal(w, err)
		return
	}
	recs, err := h.Store.ListRecurringByStaff(r.Context(), staffID)
	if err != nil {
		h.writeInternal(w, err)
		return
	}

	reqDTOs := make([]RequestDTO, len(reqs))
	for i, req := range reqs {
		reqDTOs[i] = toRequestDTO(req)
	}
	recDTOs := make([]RecurringRequestDTO, len(recs))
	for i, rec := range recs {
		recDTOs[i] = toRecurringDTO(rec)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"requests":  reqDTOs,
		"recurring": recDTOs,
	})
}

// =============================================================================
// DECISION HANDLERS
// =============================================================================

// ApproveRequest approves a pending request; the acting approver comes
// from the identity header. Falls back to the recurring table when the ID
// is not a single request.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	approver := r.Header.Get(headerStaffID)

	req, err := h.Lifecycle.Approve(r.Context(), id, approver)
	if err == nil {
		writeJSON(w, http.StatusOK, toRequestDTO(*req))
		return
	}
	if !schedule.IsNotFound(err) {
		h.writeDomainError(w, err)
		return
	}

	rec, err := h.Lifecycle.ApproveRecurring(r.Context(), id, approver)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecurringDTO(*rec))
}

// RejectRequest rejects a pending request with a reason.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	approver := r.Header.Get(headerStaffID)

	var body RejectBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Reason == "" {
		writeMessage(w, http.StatusBadRequest, schedule.MsgFillAllFields)
		return
	}

	req, err := h.Lifecycle.Reject(r.Context(), id, approver, body.Reason)
	if err == nil {
		writeJSON(w, http.StatusOK, toRequestDTO(*req))
		return
	}
	if !schedule.IsNotFound(err) {
		h.writeDomainError(w, err)
		return
	}

	rec, err := h.Lifecycle.RejectRecurring(r.Context(), id, approver, body.Reason)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecurringDTO(*rec))
}

// =============================================================================
// WITHDRAWAL HANDLERS
// =============================================================================

// WithdrawRequest creates a withdrawal request for an approved request.
func (h *Handler) WithdrawRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body WithdrawBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, schedule.MsgFillAllFields)
		return
	}

	wd, err := h.Lifecycle.RequestWithdrawal(r.Context(), id, body.RequestReason)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWithdrawalDTO(*wd))
}

// ApproveWithdrawal approves a pending withdrawal; the origin request
// becomes Withdrawn.
func (h *Handler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	wd, err := h.Lifecycle.ApproveWithdrawal(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWithdrawalDTO(*wd))
}

// RejectWithdrawal rejects a pending withdrawal; the origin request
// reverts to Approved.
func (h *Handler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body WithdrawalDecisionBody
	_ = json.NewDecoder(r.Body).Decode(&body) // comment is optional

	wd, err := h.Lifecycle.RejectWithdrawal(r.Context(), id, body.Comments)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWithdrawalDTO(*wd))
}

// =============================================================================
// EXPIRE SWEEP
// =============================================================================

// ExpireSweep bulk-rejects the staff member's past-dated approved
// requests. Reports one success message regardless of how many rows were
// affected; zero rows is still success.
func (h *Handler) ExpireSweep(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "id")

	n, err := h.Lifecycle.ExpireSweep(r.Context(), staffID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.Log.WithFields(logrus.Fields{"staff_id": staffID, "expired": n}).Info("expire sweep completed")
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Expired WFH requests processed"})
}

// =============================================================================
// HIERARCHY HANDLERS
// =============================================================================

// GetSubordinates returns the transitive subordinate set for a manager.
// A manager with no adjacency entry resolves to an empty set, not a 404.
func (h *Handler) GetSubordinates(w http.ResponseWriter, r *http.Request) {
	managerID := chi.URLParam(r, "id")

	adj, err := h.Store.Adjacency(r.Context())
	if err != nil {
		h.writeInternal(w, err)
		return
	}
	subs := hierarchy.SubordinatesOf(managerID, adj)

	writeJSON(w, http.StatusOK, SubordinatesDTO{
		ManagerID:    hierarchy.CanonicalID(managerID),
		Subordinates: subs.Sorted(),
	})
}

// GetTeamSchedule summarizes WFH days for every transitive subordinate of
// a manager over ?from=&to= (YYYY-MM-DD, inclusive).
func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	managerID := chi.URLParam(r, "id")

	from, err := schedule.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)")
		return
	}
	to, err := schedule.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)")
		return
	}

	adj, err := h.Store.Adjacency(r.Context())
	if err != nil {
		h.writeInternal(w, err)
		return
	}
	subs := hierarchy.SubordinatesOf(managerID, adj)

	out := TeamScheduleDTO{
		ManagerID: hierarchy.CanonicalID(managerID),
		From:      from.String(),
		To:        to.String(),
	}
	for _, staffID := range subs.Sorted() {
		reqs, err := h.Store.ListRequestsByStaff(r.Context(), staffID)
		if err != nil {
			h.writeInternal(w, err)
			return
		}
		recs, err := h.Store.ListRecurringByStaff(r.Context(), staffID)
		if err != nil {
			h.writeInternal(w, err)
			return
		}
		out.Staff = append(out.Staff, toStaffSummaryDTO(schedule.Summarize(staffID, reqs, recs, from, to)))
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// writeDomainError maps domain errors onto the HTTP contract.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case schedule.IsNotFound(err):
		writeMessage(w, http.StatusNotFound, "Request not found")
	case schedule.IsClientError(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		h.writeInternal(w, err)
	}
}

func (h *Handler) writeInternal(w http.ResponseWriter, err error) {
	h.Log.WithError(err).Error("internal error")
	writeJSON(w, http.StatusInternalServerError, InternalErrorResponse{
		Error:   true,
		Message: err.Error(),
		Stack:   string(debug.Stack()),
	})
}
