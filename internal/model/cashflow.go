package model

import "time"

// CashFlowEntry records income credited to the cash-flow ledger, for example
// a dividend payment. TransactionID links the entry back to the investment
// transaction that produced it so deleting the transaction can also remove
// the entry.
type CashFlowEntry struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Amount        float64   `json:"amount"`
	Label         string    `json:"label"`
	TransactionID string    `json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}
