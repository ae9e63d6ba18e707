package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/apperrors"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/numeric"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/testutil"
)

// TestSnapshotService_Refresh tests the monthly materialization.
//
// WHY: The scheduler rewrites this snapshot nightly; it must cover exactly
// the calendar month and stay idempotent across re-runs.
func TestSnapshotService_Refresh(t *testing.T) {
	t.Run("materializes the month containing now", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		testutil.CreateAsset(t, db, "PETR4", 1000, 48)
		testutil.CreateSell(t, db, "PETR4", "2024-03-15", 500, 50)
		// Outside the month, must not be counted
		testutil.CreateSell(t, db, "PETR4", "2024-04-02", 100, 50)

		now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

		// Execute
		snapshot, err := svc.Refresh(context.Background(), now)

		// Assert
		if err != nil {
			t.Fatalf("Refresh() returned unexpected error: %v", err)
		}
		if !snapshot.PeriodStart.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected period start 2024-03-01, got %v", snapshot.PeriodStart)
		}
		if !snapshot.PeriodEnd.Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected period end 2024-03-31, got %v", snapshot.PeriodEnd)
		}
		// Only the March sell: 500 * 50 = 25,000 sold, 1,000 profit
		if !numeric.Eq(snapshot.TotalSold, 25000, numeric.CurrencyDecimals) {
			t.Errorf("Expected total sold 25000, got %v", snapshot.TotalSold)
		}
		if !numeric.Eq(snapshot.EstimatedTax, 150, numeric.CurrencyDecimals) {
			t.Errorf("Expected estimated tax 150.00, got %v", snapshot.EstimatedTax)
		}
	})

	t.Run("re-running the same month replaces the stored totals", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		testutil.CreateAsset(t, db, "PETR4", 1000, 48)
		testutil.CreateSell(t, db, "PETR4", "2024-03-15", 100, 50)

		now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

		if _, err := svc.Refresh(context.Background(), now); err != nil {
			t.Fatalf("first Refresh() failed: %v", err)
		}

		// A new sell lands, the job runs again
		testutil.CreateSell(t, db, "PETR4", "2024-03-25", 100, 50)

		// Execute
		if _, err := svc.Refresh(context.Background(), now); err != nil {
			t.Fatalf("second Refresh() failed: %v", err)
		}

		// Assert: one row, updated totals
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM tax_summary_snapshot`).Scan(&count); err != nil {
			t.Fatalf("count query failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected a single snapshot row for the period, got %d", count)
		}

		latest, err := svc.Latest()
		if err != nil {
			t.Fatalf("Latest() returned unexpected error: %v", err)
		}
		if !numeric.Eq(latest.TotalSold, 10000, numeric.CurrencyDecimals) {
			t.Errorf("Expected refreshed total sold 10000, got %v", latest.TotalSold)
		}
	})
}

// TestSnapshotService_Latest tests snapshot retrieval.
func TestSnapshotService_Latest(t *testing.T) {
	t.Run("returns not found before the job ever ran", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		// Execute
		_, err := svc.Latest()

		// Assert
		if !errors.Is(err, apperrors.ErrTaxSnapshotNotFound) {
			t.Errorf("Expected ErrTaxSnapshotNotFound, got %v", err)
		}
	})

	t.Run("round-trips the stored snapshot", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		testutil.CreateAsset(t, db, "PETR4", 1000, 20)
		testutil.CreateSell(t, db, "PETR4", "2024-03-15", 500, 30)

		now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
		written, err := svc.Refresh(context.Background(), now)
		if err != nil {
			t.Fatalf("Refresh() failed: %v", err)
		}

		// Execute
		latest, err := svc.Latest()

		// Assert
		if err != nil {
			t.Fatalf("Latest() returned unexpected error: %v", err)
		}
		if latest.ID != written.ID {
			t.Errorf("Expected snapshot %s, got %s", written.ID, latest.ID)
		}
		if latest.IsExempt != written.IsExempt {
			t.Errorf("Expected IsExempt %v, got %v", written.IsExempt, latest.IsExempt)
		}
	})
}
