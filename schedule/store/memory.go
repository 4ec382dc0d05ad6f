// Package store provides schedule.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/wfh-engine/hierarchy"
	"github.com/warp/wfh-engine/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements schedule.Store and hierarchy.Source in memory.
type Memory struct {
	mu           sync.RWMutex
	requests     map[string]schedule.Request
	recurring    map[string]schedule.RecurringRequest
	withdrawals  map[string]schedule.WithdrawalRequest
	employees    map[string]schedule.Employee
	subordinates map[string]string // manager -> raw comma-separated list
}

func NewMemory() *Memory {
	return &Memory{
		requests:     make(map[string]schedule.Request),
		recurring:    make(map[string]schedule.RecurringRequest),
		withdrawals:  make(map[string]schedule.WithdrawalRequest),
		employees:    make(map[string]schedule.Employee),
		subordinates: make(map[string]string),
	}
}

// =============================================================================
// REQUEST STORE
// =============================================================================

func (m *Memory) InsertRequest(_ context.Context, req schedule.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
	return nil
}

func (m *Memory) GetRequest(_ context.Context, id string) (*schedule.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if req, ok := m.requests[id]; ok {
		return &req, nil
	}
	return nil, nil
}

func (m *Memory) UpdateRequest(_ context.Context, req schedule.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
	return nil
}

func (m *Memory) DeleteRequest(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.requests, id)
	return nil
}

func (m *Memory) ListRequestsByStaff(_ context.Context, staffID string) ([]schedule.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []schedule.Request
	for _, req := range m.requests {
		if req.StaffID == staffID {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *Memory) InsertRecurring(_ context.Context, req schedule.RecurringRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recurring[req.ID] = req
	return nil
}

func (m *Memory) GetRecurring(_ context.Context, id string) (*schedule.RecurringRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if req, ok := m.recurring[id]; ok {
		return &req, nil
	}
	return nil, nil
}

func (m *Memory) UpdateRecurring(_ context.Context, req schedule.RecurringRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recurring[req.ID] = req
	return nil
}

func (m *Memory) ListRecurringByStaff(_ context.Context, staffID string) ([]schedule.RecurringRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []schedule.RecurringRequest
	for _, req := range m.recurring {
		if req.StaffID == staffID {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.Before(result[j].Start) })
	return result, nil
}

func (m *Memory) ExpireApproved(_ context.Context, staffID string, before schedule.Date, comment string, decidedAt time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, req := range m.requests {
		if req.StaffID != staffID || req.Status != schedule.StatusApproved || !req.Date.Before(before) {
			continue
		}
		req.Status = schedule.StatusRejected
		if req.Comments == "" {
			req.Comments = comment
		} else {
			req.Comments = req.Comments + "\n" + comment
		}
		at := decidedAt
		req.DecisionDate = &at
		m.requests[id] = req
		n++
	}
	return n, nil
}

// StaffWithApprovedBefore lists distinct staff IDs holding Approved requests
// dated strictly before the given date. The sweep scheduler uses this to
// scope per-staff sweeps.
func (m *Memory) StaffWithApprovedBefore(_ context.Context, before schedule.Date) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, req := range m.requests {
		if req.Status == schedule.StatusApproved && req.Date.Before(before) {
			seen[req.StaffID] = struct{}{}
		}
	}
	result := make([]string, 0, len(seen))
	for id := range seen {
		result = append(result, id)
	}
	sort.Strings(result)
	return result, nil
}

// =============================================================================
// WITHDRAWAL STORE
// =============================================================================

func (m *Memory) InsertWithdrawal(_ context.Context, wd schedule.WithdrawalRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.withdrawals[wd.ID] = wd
	return nil
}

func (m *Memory) GetWithdrawal(_ context.Context, id string) (*schedule.WithdrawalRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if wd, ok := m.withdrawals[id]; ok {
		return &wd, nil
	}
	return nil, nil
}

func (m *Memory) UpdateWithdrawal(_ context.Context, wd schedule.WithdrawalRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.withdrawals[wd.ID] = wd
	return nil
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

func (m *Memory) GetEmployee(_ context.Context, staffID string) (*schedule.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.employees[staffID]; ok {
		return &e, nil
	}
	return nil, nil
}

// SaveEmployee seeds an employee record.
func (m *Memory) SaveEmployee(_ context.Context, e schedule.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[e.StaffID] = e
	return nil
}

// =============================================================================
// HIERARCHY SOURCE
// =============================================================================

// SaveSubordinates stores the raw comma-separated subordinate list for a
// manager, mirroring the persisted encoding.
func (m *Memory) SaveSubordinates(_ context.Context, managerID, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subordinates[managerID] = raw
	return nil
}

// Adjacency parses the stored lists once into the resolver's set form.
func (m *Memory) Adjacency(_ context.Context) (hierarchy.Adjacency, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	adj := make(hierarchy.Adjacency, len(m.subordinates))
	for manager, raw := range m.subordinates {
		adj[hierarchy.CanonicalID(manager)] = hierarchy.ParseSubordinates(manager, raw)
	}
	return adj, nil
}
