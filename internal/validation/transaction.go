package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/request"
)

// ValidTransactionKind contains the allowed transaction kind values.
var ValidTransactionKind = map[string]bool{
	"buy": true, "sell": true, "dividend": true,
}

// ValidAssetType contains the allowed asset type values.
var ValidAssetType = map[string]bool{
	"stock": true, "reit": true, "etf": true,
	"crypto": true, "fixed_income": true, "other": true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - ticker: Must match the ticker format (uppercase letters/digits)
//   - date: Must be in YYYY-MM-DD format
//   - kind: Must be one of: buy, sell, dividend
//   - quantity: Must be positive
//   - price: Must be positive
//
// Optional fields (validated if provided):
//   - fees: Must not be negative
//   - currency: Must be a three-letter code
//   - assetType: Must be one of: stock, reit, etf, crypto, fixed_income, other
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateTicker(req.Ticker); err != nil {
		errors["ticker"] = err.Error()
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	}
	_, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !ValidTransactionKind[req.Kind] {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", req.Kind)
	}

	if req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}

	if req.Fees < 0.0 {
		errors["fees"] = "fees must not be negative"
	}

	if req.Currency != "" && len(req.Currency) != 3 {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", req.Currency)
	}

	if req.AssetType != "" && !ValidAssetType[req.AssetType] {
		errors["assetType"] = fmt.Sprintf("invalid assetType: %s", req.AssetType)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
//
// Optional fields (validated if provided):
//   - kind: Must be one of: buy, sell, dividend if provided
//   - date: Must be in YYYY-MM-DD format if provided
//   - quantity: Must be positive if provided
//   - price: Must be positive if provided
//   - fees: Must not be negative if provided
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Kind != nil {
		if strings.TrimSpace(*req.Kind) == "" {
			errors["kind"] = "kind is required"
		} else if !ValidTransactionKind[*req.Kind] {
			errors["kind"] = fmt.Sprintf("invalid kind: %s", *req.Kind)
		}
	}
	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		}
		_, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0.0 {
			errors["quantity"] = "quantity must be positive"
		}
	}
	if req.Price != nil {
		if *req.Price <= 0.0 {
			errors["price"] = "price must be positive"
		}
	}
	if req.Fees != nil {
		if *req.Fees < 0.0 {
			errors["fees"] = "fees must not be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
