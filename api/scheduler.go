/*
scheduler.go - Automated expire-sweep scheduler

PURPOSE:
  Periodically finds staff members who still have Approved WFH requests
  whose date has passed and runs the expire sweep for each of them.

DESIGN:
  - Runs a background goroutine with a configurable check interval
  - The sweep itself is idempotent, so overlapping runs and restarts are
    harmless (a re-run finds nothing to transition)
  - A request approved by a human moments before the sweep fires can race
    the bulk update; no stronger guarantee is required (see schedule/store.go)

USAGE:
  scheduler := NewSweepScheduler(store, handler.Lifecycle, log)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: ExpireSweep endpoint (manual sweep for one staff member)
  - schedule/lifecycle.go: ExpireSweep
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/wfh-engine/schedule"
)

// SweepScheduler runs the expire sweep on an interval.
type SweepScheduler struct {
	Store         Store
	Lifecycle     *schedule.Lifecycle
	Log           *logrus.Logger
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSweepScheduler creates a scheduler with a 1 hour check interval.
func NewSweepScheduler(store Store, lifecycle *schedule.Lifecycle, log *logrus.Logger) *SweepScheduler {
	if log == nil {
		log = logrus.New()
	}
	return &SweepScheduler{
		Store:         store,
		Lifecycle:     lifecycle,
		Log:           log,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan struct{}),
	}
}

// Start begins the scheduler.
func (ss *SweepScheduler) Start() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if !ss.Enabled {
		ss.Log.Info("sweep scheduler disabled, not starting")
		return
	}

	ss.ticker = time.NewTicker(ss.CheckInterval)
	ss.wg.Add(1)
	go ss.run()

	ss.Log.WithField("interval", ss.CheckInterval).Info("sweep scheduler started")
}

// Stop stops the scheduler and waits for an in-flight sweep to finish.
func (ss *SweepScheduler) Stop() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.ticker != nil {
		ss.ticker.Stop()
		close(ss.stop)
		ss.wg.Wait()
		ss.Log.Info("sweep scheduler stopped")
	}
}

func (ss *SweepScheduler) run() {
	defer ss.wg.Done()

	// Run immediately on start
	ss.sweepAll()

	for {
		select {
		case <-ss.ticker.C:
			ss.sweepAll()
		case <-ss.stop:
			return
		}
	}
}

func (ss *SweepScheduler) sweepAll() {
	ctx := context.Background()
	today := schedule.Today()

	staffIDs, err := ss.Store.StaffWithApprovedBefore(ctx, today)
	if err != nil {
		ss.Log.WithError(err).Error("sweep scheduler: failed to list staff")
		return
	}

	var expired int64
	for _, staffID := range staffIDs {
		n, err := ss.Lifecycle.ExpireSweep(ctx, staffID)
		if err != nil {
			ss.Log.WithError(err).WithField("staff_id", staffID).Error("sweep scheduler: sweep failed")
			continue
		}
		expired += n
	}

	if expired > 0 {
		ss.Log.WithFields(logrus.Fields{"staff": len(staffIDs), "expired": expired}).
			Info("sweep scheduler: completed")
	}
}

// RunNow triggers an immediate sweep (for testing/admin).
func (ss *SweepScheduler) RunNow() {
	ss.sweepAll()
}
