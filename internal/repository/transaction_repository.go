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

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, ticker, kind, date, quantity, price, fees, created_at`

// Get retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound if the row does not exist.
func (r *TransactionRepository) Get(transactionID string) (model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE id = ?
	`

	var t model.Transaction
	var dateStr, createdAtStr string

	err := r.db.QueryRow(query, transactionID).Scan(
		&t.ID,
		&t.Ticker,
		&t.Kind,
		&dateStr,
		&t.Quantity,
		&t.Price,
		&t.Fees,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return t, nil
}

// GetAll retrieves all transactions, ordered by date ascending.
// If ticker is non-empty, only that ticker's transactions are returned.
func (r *TransactionRepository) GetAll(ticker string) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
	`

	var args []any

	if ticker != "" {
		query += `
		WHERE ticker = ?
		`
		args = append(args, ticker)
	}

	query += `
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListSells retrieves all sell transactions, ordered by date ascending.
// The date range is optional: a zero startDate or endDate leaves that side
// of the window open.
func (r *TransactionRepository) ListSells(startDate, endDate time.Time) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE kind = 'sell'
	`

	var args []any

	if !startDate.IsZero() {
		query += `
		AND date >= ?
		`
		args = append(args, startDate.Format("2006-01-02"))
	}
	if !endDate.IsZero() {
		query += `
		AND date <= ?
		`
		args = append(args, endDate.Format("2006-01-02"))
	}

	query += `
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Insert stores a new transaction row.
func (r *TransactionRepository) Insert(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, ticker, kind, date, quantity, price, fees, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Ticker,
		t.Kind,
		t.Date.Format("2006-01-02"),
		t.Quantity,
		t.Price,
		t.Fees,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of an existing transaction row.
// Returns apperrors.ErrTransactionNotFound if the row does not exist.
func (r *TransactionRepository) Update(ctx context.Context, t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET ticker = ?, kind = ?, date = ?, quantity = ?, price = ?, fees = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Ticker,
		t.Kind,
		t.Date.Format("2006-01-02"),
		t.Quantity,
		t.Price,
		t.Fees,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction row.
// Returns apperrors.ErrTransactionNotFound if the row does not exist.
func (r *TransactionRepository) Delete(ctx context.Context, transactionID string) error {
	query := `
		DELETE FROM "transaction"
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}

	for rows.Next() {
		var t model.Transaction
		var dateStr, createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.Ticker,
			&t.Kind,
			&dateStr,
			&t.Quantity,
			&t.Price,
			&t.Fees,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}
