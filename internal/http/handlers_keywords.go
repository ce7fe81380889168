package httpx

import (
	"errors"
	"net/http"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// KeywordHandlers provides HTTP handlers for tracked keyword operations.
type KeywordHandlers struct {
	Svc *service.KeywordService
}

// Create handles POST /api/keywords.
func (h *KeywordHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTrackedKeywordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	keyword, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, keyword)
}

// List handles GET /api/keywords.
func (h *KeywordHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageLimit, maxPageLimit)
	opts := model.TrackedKeywordListOptions{
		BrandID: queryStringPtr(r, "brand_id"),
		Country: queryStringPtr(r, "country"),
		Active:  queryBoolPtr(r, "active"),
		Limit:   limit,
		Offset:  offset,
	}

	keywords, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, keywords)
}

// GetByID handles GET /api/keywords/{id}.
func (h *KeywordHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("keyword id is required")})
		return
	}

	keyword, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, keyword)
}

// Update handles PUT /api/keywords/{id}.
func (h *KeywordHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("keyword id is required")})
		return
	}

	var req model.UpdateTrackedKeywordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	keyword, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, keyword)
}

// Delete handles DELETE /api/keywords/{id}.
func (h *KeywordHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("keyword id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
