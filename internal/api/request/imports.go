package request

// NoteOperation is one parsed trade from a brokerage note.
type NoteOperation struct {
	Ticker    string  `json:"ticker"`
	Type      string  `json:"type"`
	AssetType string  `json:"assetType,omitempty"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

// NoteFees is the fee block of a parsed brokerage note. Only the total is
// ledgered; it is pro-rated across the note's operations by traded value.
type NoteFees struct {
	Total float64 `json:"total"`
}

// ImportNoteRequest is the payload the parser microservice posts after
// extracting a brokerage note. PDF parsing itself happens upstream.
type ImportNoteRequest struct {
	Broker     string          `json:"broker,omitempty"`
	NoteDate   string          `json:"noteDate"`
	Currency   string          `json:"currency,omitempty"`
	Operations []NoteOperation `json:"operations"`
	Fees       NoteFees        `json:"fees"`
}
