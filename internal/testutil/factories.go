package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/model"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithTicker("PETR4").
//	    WithPosition(100, 35.50).
//	    OfType(model.AssetTypeStock).
//	    Build(t, db)
type AssetBuilder struct {
	ID          string
	Ticker      string
	Quantity    float64
	AverageCost float64
	Currency    string
	Type        model.AssetType
	LastUpdate  time.Time
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:          MakeID(),
		Ticker:      MakeTicker("TST"),
		Quantity:    100,
		AverageCost: 10,
		Currency:    "BRL",
		Type:        model.AssetTypeStock,
		LastUpdate:  time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithTicker sets a custom ticker.
func (b *AssetBuilder) WithTicker(ticker string) *AssetBuilder {
	b.Ticker = ticker
	return b
}

// WithPosition sets the held quantity and average cost together.
func (b *AssetBuilder) WithPosition(quantity, averageCost float64) *AssetBuilder {
	b.Quantity = quantity
	b.AverageCost = averageCost
	return b
}

// WithCurrency sets a custom currency.
func (b *AssetBuilder) WithCurrency(currency string) *AssetBuilder {
	b.Currency = currency
	return b
}

// OfType sets the asset type.
func (b *AssetBuilder) OfType(assetType model.AssetType) *AssetBuilder {
	b.Type = assetType
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO asset (id, ticker, quantity, average_cost, currency, type, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Ticker, b.Quantity, b.AverageCost, b.Currency, string(b.Type), b.LastUpdate.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:          b.ID,
		Ticker:      b.Ticker,
		Quantity:    b.Quantity,
		AverageCost: b.AverageCost,
		Currency:    b.Currency,
		Type:        b.Type,
		LastUpdate:  b.LastUpdate,
	}
}

// TransactionBuilder provides a fluent interface for creating test
// transaction log rows. Building a transaction does not touch the asset
// aggregate; pair it with an AssetBuilder when the test needs a consistent
// position.
//
// Example usage:
//
//	tx := testutil.NewTransaction().
//	    WithTicker("PETR4").
//	    Sell().
//	    WithAmounts(50, 50.00, 0).
//	    OnDate("2024-03-15").
//	    Build(t, db)
type TransactionBuilder struct {
	ID       string
	Ticker   string
	Kind     model.TransactionKind
	Date     time.Time
	Quantity float64
	Price    float64
	Fees     float64
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:       MakeID(),
		Ticker:   MakeTicker("TST"),
		Kind:     model.KindBuy,
		Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Quantity: 100,
		Price:    10,
		Fees:     0,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithTicker sets a custom ticker.
func (b *TransactionBuilder) WithTicker(ticker string) *TransactionBuilder {
	b.Ticker = ticker
	return b
}

// Buy marks the transaction as a buy.
func (b *TransactionBuilder) Buy() *TransactionBuilder {
	b.Kind = model.KindBuy
	return b
}

// Sell marks the transaction as a sell.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Kind = model.KindSell
	return b
}

// Dividend marks the transaction as a dividend.
func (b *TransactionBuilder) Dividend() *TransactionBuilder {
	b.Kind = model.KindDividend
	return b
}

// WithAmounts sets quantity, unit price and fees together.
func (b *TransactionBuilder) WithAmounts(quantity, price, fees float64) *TransactionBuilder {
	b.Quantity = quantity
	b.Price = price
	b.Fees = fees
	return b
}

// OnDate sets the transaction date from a YYYY-MM-DD string.
func (b *TransactionBuilder) OnDate(date string) *TransactionBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("invalid test date: " + date)
	}
	b.Date = parsed
	return b
}

// Build creates the transaction log row in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, ticker, kind, date, quantity, price, fees, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	// Dates are stored the way the repositories store them, so the scan
	// path sees the same representation in tests and in production.
	_, err := db.Exec(query, b.ID, b.Ticker, string(b.Kind),
		b.Date.Format("2006-01-02"), b.Quantity, b.Price, b.Fees,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:       b.ID,
		Ticker:   b.Ticker,
		Kind:     b.Kind,
		Date:     b.Date,
		Quantity: b.Quantity,
		Price:    b.Price,
		Fees:     b.Fees,
	}
}

// Convenience functions

// CreateAsset creates an asset with the given ticker, quantity and average cost.
//
// Example usage:
//
//	asset := testutil.CreateAsset(t, db, "PETR4", 200, 35)
func CreateAsset(t *testing.T, db *sql.DB, ticker string, quantity, averageCost float64) model.Asset {
	t.Helper()
	return NewAsset().WithTicker(ticker).WithPosition(quantity, averageCost).Build(t, db)
}

// CreateSell creates a sell log row for the given ticker.
//
// Example usage:
//
//	sell := testutil.CreateSell(t, db, "PETR4", "2024-03-15", 50, 50.00)
func CreateSell(t *testing.T, db *sql.DB, ticker, date string, quantity, price float64) model.Transaction {
	t.Helper()
	return NewTransaction().WithTicker(ticker).Sell().WithAmounts(quantity, price, 0).OnDate(date).Build(t, db)
}
