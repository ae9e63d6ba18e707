package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/model"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/repository"
)

// SnapshotService materializes the current calendar month's tax summary so
// the dashboard can show it without recomputing on every request. The
// exemption window is monthly, so the snapshot period is too.
type SnapshotService struct {
	taxService   *TaxService
	snapshotRepo *repository.SnapshotRepository
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	taxService *TaxService,
	snapshotRepo *repository.SnapshotRepository,
) *SnapshotService {
	return &SnapshotService{
		taxService:   taxService,
		snapshotRepo: snapshotRepo,
	}
}

// Refresh recomputes and stores the snapshot for the month containing now.
// Re-running within the same month replaces the stored totals.
func (s *SnapshotService) Refresh(ctx context.Context, now time.Time) (*model.TaxSnapshot, error) {
	periodStart, periodEnd := monthWindow(now)

	summary, err := s.taxService.Summary(ctx, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to compute snapshot summary: %w", err)
	}

	snapshot := &model.TaxSnapshot{
		ID:           uuid.New().String(),
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		TotalProfit:  summary.TotalProfit,
		TotalLoss:    summary.TotalLoss,
		NetResult:    summary.NetResult,
		TotalSold:    summary.TotalSold,
		EstimatedTax: summary.EstimatedTax,
		IsExempt:     summary.IsExempt,
		CalculatedAt: time.Now(),
	}

	if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	return snapshot, nil
}

// Latest retrieves the most recently calculated snapshot.
func (s *SnapshotService) Latest() (model.TaxSnapshot, error) {
	return s.snapshotRepo.GetLatest()
}

// monthWindow returns the first and last day of the month containing t.
func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}
