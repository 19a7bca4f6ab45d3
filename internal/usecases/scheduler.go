package usecases

import (
	"context"
	"sync"
	"time"

	"house31/pkg/log"
)

// Scheduler runs the cron sync on a fixed interval.
type Scheduler struct {
	cron     *CronSyncUseCase
	interval time.Duration
	running  sync.Mutex
}

// NewScheduler creates a scheduler. An interval of zero disables it.
func NewScheduler(cron *CronSyncUseCase, interval time.Duration) *Scheduler {
	return &Scheduler{cron: cron, interval: interval}
}

// Enabled reports whether the scheduler has a positive interval.
func (s *Scheduler) Enabled() bool {
	return s.interval > 0
}

// Run blocks until ctx is done, triggering a sync on every tick.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}

	log.GlobalInfo("sync scheduler started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one sync unless a previous one is still in progress. It reports
// whether a run was started.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.running.TryLock() {
		log.GlobalWarn("previous scheduled sync still running, skipping tick")
		return false
	}
	defer s.running.Unlock()

	if _, err := s.cron.Execute(ctx, TriggerSchedule); err != nil {
		log.GlobalErrorCtx(ctx, "scheduled sync failed", "error", err)
	}
	return true
}
