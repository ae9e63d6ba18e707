package request

// CreateTransactionRequest is the payload for registering a buy, sell or
// dividend. Currency and assetType are only used when a buy opens a new
// position; they default to BRL and stock.
type CreateTransactionRequest struct {
	Ticker    string  `json:"ticker"`
	Kind      string  `json:"kind"`
	Date      string  `json:"date"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Fees      float64 `json:"fees"`
	Currency  string  `json:"currency,omitempty"`
	AssetType string  `json:"assetType,omitempty"`
}

// UpdateTransactionRequest is the payload for editing a transaction.
// All fields are optional; the edit is computed as revert-then-reapply
// against the current position, never as a direct field patch. The ticker is
// immutable — moving an entry to another asset is a delete plus a create.
type UpdateTransactionRequest struct {
	Kind     *string  `json:"kind,omitempty"`
	Date     *string  `json:"date,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Fees     *float64 `json:"fees,omitempty"`
}
