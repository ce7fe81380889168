package httpx

import (
	"errors"
	"net/http"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// BacklinkHandlers provides HTTP handlers for backlink operations.
type BacklinkHandlers struct {
	Svc *service.BacklinkService
}

// Create handles POST /api/backlinks.
func (h *BacklinkHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBacklinkRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	backlink, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, backlink)
}

// List handles GET /api/backlinks.
func (h *BacklinkHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageLimit, maxPageLimit)
	opts := model.BacklinkListOptions{
		BrandID:  queryStringPtr(r, "brand_id"),
		Domain:   queryStringPtr(r, "domain"),
		Nofollow: queryBoolPtr(r, "nofollow"),
		Limit:    limit,
		Offset:   offset,
	}

	backlinks, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, backlinks)
}

// GetByID handles GET /api/backlinks/{id}.
func (h *BacklinkHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("backlink id is required")})
		return
	}

	backlink, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, backlink)
}

// Update handles PUT /api/backlinks/{id}.
func (h *BacklinkHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("backlink id is required")})
		return
	}

	var req model.UpdateBacklinkRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	backlink, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, backlink)
}

// Delete handles DELETE /api/backlinks/{id}.
func (h *BacklinkHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("backlink id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
