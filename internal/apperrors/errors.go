package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that no position exists for the given ticker.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTaxSnapshotNotFound indicates that no materialized tax snapshot exists yet.
	ErrTaxSnapshotNotFound = errors.New("tax snapshot not found")
)

// Business rule errors are rejections the dashboard shows to the user
// verbatim. They are never retried and no state mutation happens before or
// after they are detected.
var (
	// ErrInsufficientQuantity indicates a sell larger than the held balance.
	ErrInsufficientQuantity = errors.New("Quantidade insuficiente")

	// ErrNegativeBalance indicates that reverting a buy would drive the
	// position below zero because later sells already consumed the lot.
	ErrNegativeBalance = errors.New("Saldo ficaria negativo")

	// ErrNoPosition indicates a dividend registered against a ticker with no
	// open position.
	ErrNoPosition = errors.New("Nenhuma posição para o ativo")

	// ErrUnknownTransactionKind indicates a transaction kind outside buy, sell, dividend.
	ErrUnknownTransactionKind = errors.New("unknown transaction kind")
)

// Validation errors represent malformed input detected before any business
// rule runs.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These wrap repository I/O problems, not business rules.
var (
	// ErrRepository indicates a storage read or write failure.
	ErrRepository = errors.New("repository operation failed")

	ErrFailedToRetrieveAssets        = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset         = errors.New("failed to retrieve asset")
	ErrFailedToRetrieveTransactions  = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction   = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveCashFlow      = errors.New("failed to retrieve cash flow entries")
	ErrFailedToComputeClosedPosition = errors.New("failed to compute closed positions")
	ErrFailedToComputeTaxSummary     = errors.New("failed to compute tax summary")
	ErrFailedToImportNote            = errors.New("failed to import brokerage note")
)
