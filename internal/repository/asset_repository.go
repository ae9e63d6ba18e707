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

// AssetRepository provides data access methods for the asset table.
// Each row is the aggregate position for one ticker.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, ticker, quantity, average_cost, currency, type, last_update`

// GetByTicker retrieves the asset row for a ticker.
// Returns apperrors.ErrAssetNotFound if no position has ever been opened for it.
func (r *AssetRepository) GetByTicker(ticker string) (model.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM asset
		WHERE ticker = ?
	`

	var a model.Asset
	var lastUpdateStr string

	err := r.db.QueryRow(query, ticker).Scan(
		&a.ID,
		&a.Ticker,
		&a.Quantity,
		&a.AverageCost,
		&a.Currency,
		&a.Type,
		&lastUpdateStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset table: %w", err)
	}

	a.LastUpdate, err = ParseTime(lastUpdateStr)
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return a, nil
}

// GetAll retrieves every asset row, including retained zero-quantity positions,
// ordered by ticker.
func (r *AssetRepository) GetAll() ([]model.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM asset
		ORDER BY ticker ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	return scanAssets(rows)
}

// Upsert inserts the asset row for its ticker, or replaces quantity,
// average cost, currency, type and last_update if the ticker already exists.
func (r *AssetRepository) Upsert(ctx context.Context, asset model.Asset) error {
	query := `
		INSERT INTO asset (id, ticker, quantity, average_cost, currency, type, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			quantity = excluded.quantity,
			average_cost = excluded.average_cost,
			currency = excluded.currency,
			type = excluded.type,
			last_update = excluded.last_update
	`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.Ticker,
		asset.Quantity,
		asset.AverageCost,
		asset.Currency,
		asset.Type,
		asset.LastUpdate.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert asset: %w", err)
	}

	return nil
}

func scanAssets(rows *sql.Rows) ([]model.Asset, error) {
	assets := []model.Asset{}

	for rows.Next() {
		var a model.Asset
		var lastUpdateStr string

		err := rows.Scan(
			&a.ID,
			&a.Ticker,
			&a.Quantity,
			&a.AverageCost,
			&a.Currency,
			&a.Type,
			&lastUpdateStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}

		a.LastUpdate, err = ParseTime(lastUpdateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}
