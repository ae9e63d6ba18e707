package handlers

import (
	"net/http"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/response"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/apperrors"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/service"
)

// CashFlowHandler handles HTTP requests for the income cash-flow ledger.
type CashFlowHandler struct {
	cashFlowService *service.CashFlowService
}

// NewCashFlowHandler creates a new CashFlowHandler with the provided service dependency.
func NewCashFlowHandler(cashFlowService *service.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{cashFlowService: cashFlowService}
}

// AllEntries handles GET requests to list cash-flow entries, newest first.
//
// Endpoint: GET /api/cashflow
// Response: 200 OK with array of CashFlowEntry
// Error: 500 Internal Server Error if retrieval fails
func (h *CashFlowHandler) AllEntries(w http.ResponseWriter, _ *http.Request) {
	entries, err := h.cashFlowService.GetAllEntries()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCashFlow.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, entries)
}
