package httpx

import (
	"errors"
	"net/http"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// ImposterHandlers provides HTTP handlers for imposter watch operations.
type ImposterHandlers struct {
	Svc *service.ImposterService
}

// Create handles POST /api/imposters.
func (h *ImposterHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateImposterWatchRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	watch, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, watch)
}

// List handles GET /api/imposters.
func (h *ImposterHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageLimit, maxPageLimit)
	opts := model.ImposterWatchListOptions{
		BrandID: queryStringPtr(r, "brand_id"),
		Status:  queryStringPtr(r, "status"),
		Limit:   limit,
		Offset:  offset,
	}

	watches, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, watches)
}

// GetByID handles GET /api/imposters/{id}.
func (h *ImposterHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("watch id is required")})
		return
	}

	watch, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, watch)
}

// Update handles PUT /api/imposters/{id}.
func (h *ImposterHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("watch id is required")})
		return
	}

	var req model.UpdateImposterWatchRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	watch, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, watch)
}

// Delete handles DELETE /api/imposters/{id}.
func (h *ImposterHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("watch id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// Sweep handles POST /api/brands/{id}/imposters/sweep. It checks the brand's
// active watch patterns against the reconciled link domain inventory.
func (h *ImposterHandlers) Sweep(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	if brandID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("brand id is required")})
		return
	}

	matches, err := h.Svc.Sweep(r.Context(), brandID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"matches": matches,
		"count":   len(matches),
	})
}
