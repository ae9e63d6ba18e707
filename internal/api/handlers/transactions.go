package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/request"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/response"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/apperrors"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/service"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the ledgerService.
type TransactionHandler struct {
	ledgerService *service.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(ledgerService *service.LedgerService) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
	}
}

// AllTransactions handles GET requests to retrieve transactions, optionally
// filtered by the ticker query parameter.
//
// Endpoint: GET /api/transaction?ticker=PETR4
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")

	transactions, err := h.ledgerService.GetTransactions(ticker)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.ledgerService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to register a buy, sell or dividend.
// Validates the request body and applies the operation to the ticker's position.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (ticker, kind, date, quantity, price, fees, currency, assetType)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 422 Unprocessable Entity if a business rule rejects the operation
// Error: 500 Internal Server Error if persistence fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.ledgerService.RegisterTransaction(r.Context(), req)
	if err != nil {
		respondLedgerError(w, err, "failed to create transaction")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to edit an existing transaction.
// The edit is applied as revert-then-reapply against the current position;
// if either step fails, nothing is written.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
// Error: 422 Unprocessable Entity if a business rule rejects the edit
// Error: 500 Internal Server Error if persistence fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.ledgerService.UpdateTransaction(r.Context(), transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		respondLedgerError(w, err, "failed to update transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
// Validates that the transaction can be safely reverted before deleting.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 422 Unprocessable Entity if the position no longer allows the revert
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	err := h.ledgerService.DeleteTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		respondLedgerError(w, err, "failed to delete transaction")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// respondLedgerError maps ledger failures onto HTTP statuses: business-rule
// rejections are 422 with the rule's message passed through verbatim, the
// rest is 500.
func respondLedgerError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientQuantity),
		errors.Is(err, apperrors.ErrNegativeBalance),
		errors.Is(err, apperrors.ErrNoPosition):
		response.RespondError(w, http.StatusUnprocessableEntity, err.Error(), "")
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
