package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/repository"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/service"
)

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestCashFlowService(t *testing.T, db *sql.DB) *service.CashFlowService {
	t.Helper()

	cashFlowRepo := repository.NewCashFlowRepository(db)

	return service.NewCashFlowService(
		cashFlowRepo,
	)
}

func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewLedgerService(
		assetRepo,
		transactionRepo,
		NewTestCashFlowService(t, db),
	)
}

func NewTestTaxService(t *testing.T, db *sql.DB) *service.TaxService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	return service.NewTaxService(
		transactionRepo,
		assetRepo,
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewSnapshotService(
		NewTestTaxService(t, db),
		snapshotRepo,
	)
}

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	return service.NewImportService(NewTestLedgerService(t, db))
}

// MakeID generates a fresh UUID for test records.
func MakeID() string {
	return uuid.New().String()
}

// MakeTicker generates a unique ticker with the given prefix, so tests that
// share a database never collide on the asset table's unique constraint.
func MakeTicker(prefix string) string {
	if prefix == "" {
		prefix = "TST"
	}
	return prefix + randomAlphanumeric(4)
}

func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
