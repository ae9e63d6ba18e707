package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/model"
)

// CashFlowRepository provides data access methods for the cash_flow table,
// the income side of the dashboard that dividends credit into.
type CashFlowRepository struct {
	db *sql.DB
}

// NewCashFlowRepository creates a new CashFlowRepository with the provided database connection.
func NewCashFlowRepository(db *sql.DB) *CashFlowRepository {
	return &CashFlowRepository{db: db}
}

// GetAll retrieves every cash flow entry, newest first.
func (r *CashFlowRepository) GetAll() ([]model.CashFlowEntry, error) {
	query := `
		SELECT id, date, amount, label, transaction_id, created_at
		FROM cash_flow
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash_flow table: %w", err)
	}
	defer rows.Close()

	entries := []model.CashFlowEntry{}

	for rows.Next() {
		var e model.CashFlowEntry
		var dateStr, createdAtStr string
		var transactionID sql.NullString

		err := rows.Scan(
			&e.ID,
			&dateStr,
			&e.Amount,
			&e.Label,
			&transactionID,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash_flow table results: %w", err)
		}

		e.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		e.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		// transaction_id is nullable
		if transactionID.Valid {
			e.TransactionID = transactionID.String
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash_flow table: %w", err)
	}

	return entries, nil
}

// Insert stores a new cash flow entry.
func (r *CashFlowRepository) Insert(ctx context.Context, e *model.CashFlowEntry) error {
	query := `
		INSERT INTO cash_flow (id, date, amount, label, transaction_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var transactionID any
	if e.TransactionID != "" {
		transactionID = e.TransactionID
	}

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Date.Format("2006-01-02"),
		e.Amount,
		e.Label,
		transactionID,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash flow entry: %w", err)
	}

	return nil
}

// DeleteForTransaction removes the cash flow entries linked to a transaction.
// Deleting a dividend transaction uses this to drop its income side effect.
// Removing zero rows is not an error; the entry may never have been written.
func (r *CashFlowRepository) DeleteForTransaction(ctx context.Context, transactionID string) error {
	query := `
		DELETE FROM cash_flow
		WHERE transaction_id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, transactionID); err != nil {
		return fmt.Errorf("failed to delete cash flow entries: %w", err)
	}

	return nil
}
