package handlers

import (
	"net/http"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/request"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/response"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/apperrors"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/service"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/validation"
)

// ImportHandler handles HTTP requests for brokerage note imports.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler with the provided service dependency.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportNote handles POST requests to register every operation of a
// brokerage note, pro-rating the note's fees across its operations.
//
// Endpoint: POST /api/import/note
// Response: 201 Created with ImportResult
// Error: 400 Bad Request if the payload is malformed or fails validation
// Error: 500 Internal Server Error if the import fails
func (h *ImportHandler) ImportNote(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ImportNoteRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateImportNote(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.importService.RegisterNote(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportNote.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}
