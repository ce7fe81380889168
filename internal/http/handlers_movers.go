package httpx

import (
	"errors"
	"net/http"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// MoversHandlers provides HTTP handlers for day-over-day movement reports
// and persisted rank alerts.
type MoversHandlers struct {
	Svc *service.MoversService
}

// Movers handles GET /api/brands/{id}/movers.
func (h *MoversHandlers) Movers(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	if brandID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("brand id is required")})
		return
	}

	result, err := h.Svc.Movers(r.Context(), brandID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Detect handles POST /api/brands/{id}/movers/detect. Unlike the read-only
// report, this persists alert rows and notifies the configured sink.
func (h *MoversHandlers) Detect(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	if brandID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("brand id is required")})
		return
	}

	result, err := h.Svc.DetectAndAlert(r.Context(), brandID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// ListAlerts handles GET /api/alerts.
func (h *MoversHandlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageLimit, maxPageLimit)
	opts := model.RankAlertListOptions{
		BrandID: queryStringPtr(r, "brand_id"),
		Limit:   limit,
		Offset:  offset,
	}
	var ok bool
	if opts.Since, ok = queryTimePtr(w, r, "since"); !ok {
		return
	}

	alerts, err := h.Svc.ListAlerts(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, alerts)
}
