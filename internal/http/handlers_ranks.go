package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// RankHandlers provides HTTP handlers for rank observations and statistics.
type RankHandlers struct {
	Svc *service.RankService
}

// Record handles POST /api/ranks.
func (h *RankHandlers) Record(w http.ResponseWriter, r *http.Request) {
	var req model.RecordRankRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	obs, err := h.Svc.Record(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, obs)
}

// History handles GET /api/keywords/{id}/history.
func (h *RankHandlers) History(w http.ResponseWriter, r *http.Request) {
	keywordID := r.PathValue("id")
	if keywordID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("keyword id is required")})
		return
	}

	opts := model.RankHistoryOptions{
		KeywordID: keywordID,
		Limit:     parseIntQuery(r, "limit", 0),
	}
	var ok bool
	if opts.Since, ok = queryTimePtr(w, r, "since"); !ok {
		return
	}
	if opts.Until, ok = queryTimePtr(w, r, "until"); !ok {
		return
	}

	history, err := h.Svc.History(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, history)
}

// Stats handles GET /api/keywords/{id}/stats.
func (h *RankHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	keywordID := r.PathValue("id")
	if keywordID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("keyword id is required")})
		return
	}

	stats, err := h.Svc.Stats(r.Context(), keywordID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// queryTimePtr parses an RFC 3339 timestamp query param. Returns ok=false
// after writing a 400 response when the value is present but malformed.
func queryTimePtr(w http.ResponseWriter, r *http.Request, key string) (*time.Time, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_query",
			Err:     errors.New(key + " must be an RFC 3339 timestamp"),
		})
		return nil, false
	}
	return &t, true
}
