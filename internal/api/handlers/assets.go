package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/response"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/apperrors"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/service"
)

// AssetHandler handles HTTP requests for asset (position) endpoints.
type AssetHandler struct {
	ledgerService *service.LedgerService
}

// NewAssetHandler creates a new AssetHandler with the provided service dependency.
func NewAssetHandler(ledgerService *service.LedgerService) *AssetHandler {
	return &AssetHandler{
		ledgerService: ledgerService,
	}
}

// AllAssets handles GET requests to retrieve every position, including
// retained zero-quantity rows.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of Asset
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) AllAssets(w http.ResponseWriter, _ *http.Request) {
	assets, err := h.ledgerService.GetAllAssets()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET requests to retrieve the position for one ticker.
//
// Endpoint: GET /api/asset/{ticker}
// Response: 200 OK with Asset
// Error: 400 Bad Request if ticker is invalid (validated by middleware)
// Error: 404 Not Found if no position exists for the ticker
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	asset, err := h.ledgerService.GetAsset(ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}
