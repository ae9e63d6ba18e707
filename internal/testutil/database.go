package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Asset table: one aggregate position per ticker
		CREATE TABLE IF NOT EXISTS asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(20) NOT NULL UNIQUE,
			quantity FLOAT NOT NULL DEFAULT 0,
			average_cost FLOAT NOT NULL DEFAULT 0,
			currency VARCHAR(3) NOT NULL DEFAULT 'BRL',
			type VARCHAR(15) NOT NULL,
			last_update DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Transaction log (quoted because transaction is a reserved keyword)
		CREATE TABLE IF NOT EXISTS "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(20) NOT NULL,
			kind VARCHAR(10) NOT NULL,
			date DATE NOT NULL,
			quantity FLOAT NOT NULL,
			price FLOAT NOT NULL,
			fees FLOAT NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_transaction_ticker ON "transaction"(ticker);
		CREATE INDEX IF NOT EXISTS idx_transaction_kind_date ON "transaction"(kind, date);

		-- Cash flow ledger
		CREATE TABLE IF NOT EXISTS cash_flow (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL,
			amount FLOAT NOT NULL,
			label VARCHAR(100) NOT NULL,
			transaction_id VARCHAR(36),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_cash_flow_transaction ON cash_flow(transaction_id);

		-- Materialized monthly tax summary
		CREATE TABLE IF NOT EXISTS tax_summary_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			total_profit FLOAT NOT NULL,
			total_loss FLOAT NOT NULL,
			net_result FLOAT NOT NULL,
			total_sold FLOAT NOT NULL,
			estimated_tax FLOAT NOT NULL,
			is_exempt BOOLEAN NOT NULL,
			calculated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT unique_snapshot_period UNIQUE (period_start, period_end)
		);
	`

	_, err := db.Exec(schema)
	return err
}
