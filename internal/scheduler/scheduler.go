// Package scheduler runs the periodic background jobs of the ledger backend.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/service"
)

// Scheduler owns the cron runner and the jobs registered on it.
// Currently the only job is the nightly tax snapshot refresh.
type Scheduler struct {
	cron            *cron.Cron
	snapshotService *service.SnapshotService
}

// New creates a Scheduler with the provided dependencies.
func New(snapshotService *service.SnapshotService) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		snapshotService: snapshotService,
	}
}

// Start registers the snapshot job on the given cron schedule and starts the
// runner in its own goroutine.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.refreshSnapshot)
	if err != nil {
		return fmt.Errorf("failed to schedule snapshot job: %w", err)
	}

	s.cron.Start()
	log.Printf("Snapshot job scheduled: %s", schedule)
	return nil
}

// Stop stops the cron runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) refreshSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	snapshot, err := s.snapshotService.Refresh(ctx, time.Now())
	if err != nil {
		log.Printf("Tax snapshot refresh failed: %v", err)
		return
	}

	log.Printf("Tax snapshot refreshed for %s to %s",
		snapshot.PeriodStart.Format("2006-01-02"),
		snapshot.PeriodEnd.Format("2006-01-02"),
	)
}
