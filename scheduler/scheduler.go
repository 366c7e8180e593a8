// Package scheduler implements background job scheduling
package scheduler

import (
	"log/slog"
	"time"

	"weatherwidget.app/service"
)

// Scheduler periodically refreshes the weather snapshots of all tracked
// cities. The first refresh happens at tracker initialization, so the
// scheduler only runs the recurring ticks.
type Scheduler struct {
	tracker  service.TrackerServiceInterface
	interval time.Duration
	stop     chan struct{}
}

// NewScheduler creates a refresh scheduler with the given interval
func NewScheduler(tracker service.TrackerServiceInterface, interval time.Duration) *Scheduler {
	return &Scheduler{
		tracker:  tracker,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs the refresh loop until Stop is called. Blocks; run in a
// goroutine.
func (s *Scheduler) Start() {
	slog.Info("Refresh scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			slog.Debug("Scheduled weather refresh")
			s.tracker.RefreshAll()
		case <-s.stop:
			slog.Info("Refresh scheduler stopped")
			return
		}
	}
}

// Stop terminates the refresh loop
func (s *Scheduler) Stop() {
	close(s.stop)
}
