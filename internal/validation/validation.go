package validation

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID      = fmt.Errorf("invalid UUID format")
	ErrInvalidTicker    = fmt.Errorf("invalid ticker format")
	ErrInvalidDateRange = fmt.Errorf("invalid date range")
)

// tickerPattern accepts exchange tickers like PETR4, KNRI11, AAPL, BTC-USD.
var tickerPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]{0,19}$`)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateTicker checks if a string is an acceptable ticker symbol.
func ValidateTicker(ticker string) error {
	if !tickerPattern.MatchString(ticker) {
		return fmt.Errorf("%w: %s", ErrInvalidTicker, ticker)
	}
	return nil
}
