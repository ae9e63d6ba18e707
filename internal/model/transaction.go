package model

import "time"

// TransactionKind identifies the operation a transaction records.
type TransactionKind string

// Supported transaction kinds.
const (
	KindBuy      TransactionKind = "buy"
	KindSell     TransactionKind = "sell"
	KindDividend TransactionKind = "dividend"
)

// Transaction is one append-oriented ledger entry for an asset.
// Rows are only ever changed through the edit operation (revert old, apply
// new) and only removed through delete, which validates reversibility first.
type Transaction struct {
	ID        string          `json:"id"`
	Ticker    string          `json:"ticker"`
	Kind      TransactionKind `json:"kind"`
	Date      time.Time       `json:"date"`
	Quantity  float64         `json:"quantity"`
	Price     float64         `json:"price"`
	Fees      float64         `json:"fees"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

// GrossValue returns quantity * price, the traded value before fees.
func (t Transaction) GrossValue() float64 {
	return t.Quantity * t.Price
}
