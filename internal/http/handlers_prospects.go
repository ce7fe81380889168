package httpx

import (
	"errors"
	"net/http"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// ProspectHandlers provides HTTP handlers for outreach prospect operations.
type ProspectHandlers struct {
	Svc *service.ProspectService
}

// Create handles POST /api/prospects.
func (h *ProspectHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProspectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	prospect, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, prospect)
}

// List handles GET /api/prospects.
func (h *ProspectHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageLimit, maxPageLimit)
	opts := model.ProspectListOptions{
		BrandID: queryStringPtr(r, "brand_id"),
		Domain:  queryStringPtr(r, "domain"),
		Limit:   limit,
		Offset:  offset,
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := model.ProspectStatus(v)
		opts.Status = &status
	}

	prospects, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, prospects)
}

// GetByID handles GET /api/prospects/{id}.
func (h *ProspectHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("prospect id is required")})
		return
	}

	prospect, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, prospect)
}

// Update handles PUT /api/prospects/{id}.
func (h *ProspectHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("prospect id is required")})
		return
	}

	var req model.UpdateProspectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	prospect, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, prospect)
}

// Delete handles DELETE /api/prospects/{id}.
func (h *ProspectHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("prospect id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// Stats handles GET /api/brands/{id}/prospect-stats.
func (h *ProspectHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	if brandID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("brand id is required")})
		return
	}

	stats, err := h.Svc.Stats(r.Context(), brandID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}
