package handlers

import (
	"errors"
	"net/http"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/response"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/apperrors"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/service"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/validation"
)

// TaxHandler handles HTTP requests for realized gain/loss and tax endpoints.
type TaxHandler struct {
	taxService      *service.TaxService
	snapshotService *service.SnapshotService
}

// NewTaxHandler creates a new TaxHandler with the provided service dependencies.
func NewTaxHandler(taxService *service.TaxService, snapshotService *service.SnapshotService) *TaxHandler {
	return &TaxHandler{
		taxService:      taxService,
		snapshotService: snapshotService,
	}
}

// ClosedPositions handles GET requests to list realized results per sell.
// The start/end query parameters bound the window; both are optional.
//
// Endpoint: GET /api/tax/closed-positions?start=2024-01-01&end=2024-12-31
// Response: 200 OK with array of ClosedPosition
// Error: 400 Bad Request if the date range is malformed
// Error: 500 Internal Server Error if computation fails
func (h *TaxHandler) ClosedPositions(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := validation.ParseDateRange(
		r.URL.Query().Get("start"),
		r.URL.Query().Get("end"),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date range", err.Error())
		return
	}

	positions, err := h.taxService.ClosedPositions(r.Context(), startDate, endDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeClosedPosition.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Summary handles GET requests for the aggregated capital-gains estimate.
// The start/end query parameters bound the window; both are optional.
//
// Endpoint: GET /api/tax/summary?start=2024-01-01&end=2024-01-31
// Response: 200 OK with TaxSummary
// Error: 400 Bad Request if the date range is malformed
// Error: 500 Internal Server Error if computation fails
func (h *TaxHandler) Summary(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := validation.ParseDateRange(
		r.URL.Query().Get("start"),
		r.URL.Query().Get("end"),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date range", err.Error())
		return
	}

	summary, err := h.taxService.Summary(r.Context(), startDate, endDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeTaxSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Snapshot handles GET requests for the latest materialized monthly summary.
//
// Endpoint: GET /api/tax/snapshot
// Response: 200 OK with TaxSnapshot
// Error: 404 Not Found if the snapshot job has never run
// Error: 500 Internal Server Error if retrieval fails
func (h *TaxHandler) Snapshot(w http.ResponseWriter, _ *http.Request) {
	snapshot, err := h.snapshotService.Latest()
	if err != nil {
		if errors.Is(err, apperrors.ErrTaxSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTaxSnapshotNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve tax snapshot", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
