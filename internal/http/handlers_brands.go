// Package httpx provides the JSON API handlers and router for the LinkPilot service.
package httpx

import (
	"errors"
	"net/http"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// Pagination bounds shared by the list endpoints.
const (
	defaultPageLimit = 50
	maxPageLimit     = 1000
)

// BrandHandlers provides HTTP handlers for brand operations.
type BrandHandlers struct {
	Svc *service.BrandService
}

// Create handles POST /api/brands.
func (h *BrandHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBrandRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	brand, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, brand)
}

// List handles GET /api/brands.
func (h *BrandHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageLimit, maxPageLimit)
	opts := model.BrandListOptions{
		Name:   queryStringPtr(r, "name"),
		Limit:  limit,
		Offset: offset,
	}

	brands, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, brands)
}

// GetByID handles GET /api/brands/{id}.
func (h *BrandHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("brand id is required")})
		return
	}

	brand, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, brand)
}

// Update handles PUT /api/brands/{id}.
func (h *BrandHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("brand id is required")})
		return
	}

	var req model.UpdateBrandRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	brand, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, brand)
}

// Delete handles DELETE /api/brands/{id}.
func (h *BrandHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("brand id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
