package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/apperrors"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the tax_summary_snapshot
// table, the materialized monthly tax summaries written by the scheduler.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert inserts the snapshot for its period, or replaces the stored totals
// if a snapshot for the same period already exists. Re-running the job for a
// period is idempotent.
func (r *SnapshotRepository) Upsert(ctx context.Context, s *model.TaxSnapshot) error {
	query := `
		INSERT INTO tax_summary_snapshot
			(id, period_start, period_end, total_profit, total_loss, net_result,
			 total_sold, estimated_tax, is_exempt, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(period_start, period_end) DO UPDATE SET
			total_profit = excluded.total_profit,
			total_loss = excluded.total_loss,
			net_result = excluded.net_result,
			total_sold = excluded.total_sold,
			estimated_tax = excluded.estimated_tax,
			is_exempt = excluded.is_exempt,
			calculated_at = excluded.calculated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.PeriodStart.Format("2006-01-02"),
		s.PeriodEnd.Format("2006-01-02"),
		s.TotalProfit,
		s.TotalLoss,
		s.NetResult,
		s.TotalSold,
		s.EstimatedTax,
		s.IsExempt,
		s.CalculatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert tax snapshot: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recently calculated snapshot.
// Returns apperrors.ErrTaxSnapshotNotFound if the job has never run.
func (r *SnapshotRepository) GetLatest() (model.TaxSnapshot, error) {
	query := `
		SELECT id, period_start, period_end, total_profit, total_loss, net_result,
		       total_sold, estimated_tax, is_exempt, calculated_at
		FROM tax_summary_snapshot
		ORDER BY calculated_at DESC
		LIMIT 1
	`

	var s model.TaxSnapshot
	var periodStartStr, periodEndStr, calculatedAtStr string

	err := r.db.QueryRow(query).Scan(
		&s.ID,
		&periodStartStr,
		&periodEndStr,
		&s.TotalProfit,
		&s.TotalLoss,
		&s.NetResult,
		&s.TotalSold,
		&s.EstimatedTax,
		&s.IsExempt,
		&calculatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TaxSnapshot{}, apperrors.ErrTaxSnapshotNotFound
	}
	if err != nil {
		return model.TaxSnapshot{}, fmt.Errorf("failed to scan tax_summary_snapshot results: %w", err)
	}

	s.PeriodStart, err = ParseTime(periodStartStr)
	if err != nil {
		return model.TaxSnapshot{}, fmt.Errorf("failed to parse date: %w", err)
	}

	s.PeriodEnd, err = ParseTime(periodEndStr)
	if err != nil {
		return model.TaxSnapshot{}, fmt.Errorf("failed to parse date: %w", err)
	}

	s.CalculatedAt, err = ParseTime(calculatedAtStr)
	if err != nil {
		return model.TaxSnapshot{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return s, nil
}
