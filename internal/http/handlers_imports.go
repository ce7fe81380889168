package httpx

import (
	"errors"
	"net/http"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// ImportHandlers provides HTTP handlers for competitive import classification.
type ImportHandlers struct {
	Svc *service.ImportService
}

// Classify handles POST /api/imports/classify.
func (h *ImportHandlers) Classify(w http.ResponseWriter, r *http.Request) {
	var req model.ClassifyImportRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Classify(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// ListBatches handles GET /api/imports.
func (h *ImportHandlers) ListBatches(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageLimit, maxPageLimit)
	opts := model.ImportBatchListOptions{
		BrandID: queryStringPtr(r, "brand_id"),
		Limit:   limit,
		Offset:  offset,
	}

	batches, err := h.Svc.ListBatches(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, batches)
}

// GetBatch handles GET /api/imports/{id}.
func (h *ImportHandlers) GetBatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("batch id is required")})
		return
	}

	batch, err := h.Svc.GetBatch(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, batch)
}

// ListRows handles GET /api/imports/{id}/rows.
func (h *ImportHandlers) ListRows(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("batch id is required")})
		return
	}

	rows, err := h.Svc.ListRows(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, rows)
}
