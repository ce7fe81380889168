package httpx

import (
	"errors"
	"net/http"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// ReconcileHandlers provides HTTP handlers for link domain reconciliation.
type ReconcileHandlers struct {
	Svc *service.ReconcileService
}

// Reconcile handles POST /api/brands/{id}/reconcile. It rebuilds the
// per-domain aggregate view from the brand's backlinks and prospects.
func (h *ReconcileHandlers) Reconcile(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	if brandID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("brand id is required")})
		return
	}

	result, err := h.Svc.Reconcile(r.Context(), brandID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// ListDomains handles GET /api/link-domains.
func (h *ReconcileHandlers) ListDomains(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageLimit, maxPageLimit)
	opts := model.LinkDomainListOptions{
		BrandID:   queryStringPtr(r, "brand_id"),
		Domain:    queryStringPtr(r, "domain"),
		MinRating: queryIntPtr(r, "min_rating"),
		Limit:     limit,
		Offset:    offset,
	}

	domains, err := h.Svc.ListDomains(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, domains)
}

// GetDomain handles GET /api/brands/{id}/link-domains/{domain}.
func (h *ReconcileHandlers) GetDomain(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	domain := r.PathValue("domain")
	if brandID == "" || domain == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("brand id and domain are required")})
		return
	}

	row, err := h.Svc.GetDomain(r.Context(), brandID, domain)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, row)
}
