package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/request"
)

// ValidateImportNote validates a parsed brokerage note before it is
// ledgered.
//
// Required fields:
//   - noteDate: Must be in YYYY-MM-DD format
//   - operations: At least one, each with a valid ticker, a buy/sell type,
//     positive quantity and positive price
//
// Optional fields (validated if provided):
//   - fees.total: Must not be negative
//   - currency: Must be a three-letter code
//   - assetType per operation: Must be a known asset type
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateImportNote(req request.ImportNoteRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.NoteDate) == "" {
		errors["noteDate"] = "noteDate is required"
	}
	_, err := time.Parse("2006-01-02", req.NoteDate)
	if err != nil {
		errors["noteDate"] = err.Error()
	}

	if len(req.Operations) == 0 {
		errors["operations"] = "at least one operation is required"
	}

	if req.Fees.Total < 0.0 {
		errors["fees"] = "fees total must not be negative"
	}

	if req.Currency != "" && len(req.Currency) != 3 {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", req.Currency)
	}

	for i, op := range req.Operations {
		field := fmt.Sprintf("operations[%d]", i)

		if err := ValidateTicker(op.Ticker); err != nil {
			errors[field+".ticker"] = err.Error()
		}

		// Notes only carry trades; dividends arrive through other statements.
		if op.Type != "buy" && op.Type != "sell" {
			errors[field+".type"] = fmt.Sprintf("invalid type: %s", op.Type)
		}

		if op.Quantity <= 0.0 {
			errors[field+".quantity"] = "quantity must be positive"
		}

		if op.Price <= 0.0 {
			errors[field+".price"] = "price must be positive"
		}

		if op.AssetType != "" && !ValidAssetType[op.AssetType] {
			errors[field+".assetType"] = fmt.Sprintf("invalid assetType: %s", op.AssetType)
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
