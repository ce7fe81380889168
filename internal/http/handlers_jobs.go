package httpx

import (
	"errors"
	"net/http"

	"github.com/linkpilot/linkpilot-api/internal/service"
)

// JobHandlers provides HTTP handlers for rank fetch jobs and their schedules.
type JobHandlers struct {
	Jobs      *service.RankJobService
	Scheduler *service.SchedulerService
}

// Enqueue handles POST /api/jobs. The worker pool picks the job up via its
// lease loop; this endpoint only queues it.
func (h *JobHandlers) Enqueue(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BrandID string `json:"brand_id"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	job, err := h.Jobs.Enqueue(r.Context(), body.BrandID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, job)
}

// GetByID handles GET /api/jobs/{id}.
func (h *JobHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")})
		return
	}

	job, err := h.Jobs.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// Stats handles GET /api/jobs/stats.
func (h *JobHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Jobs.Stats(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// UpsertSchedule handles PUT /api/brands/{id}/schedule.
func (h *JobHandlers) UpsertSchedule(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	if brandID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("brand id is required")})
		return
	}

	var body struct {
		IntervalMinutes int `json:"interval_minutes"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	schedule, err := h.Scheduler.Upsert(r.Context(), brandID, body.IntervalMinutes)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, schedule)
}

// SetScheduleEnabled handles PUT /api/schedules/{id}/enabled.
func (h *JobHandlers) SetScheduleEnabled(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("schedule id is required")})
		return
	}

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	updated, err := h.Scheduler.SetEnabled(r.Context(), id, body.Enabled)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

// DeleteSchedule handles DELETE /api/schedules/{id}.
func (h *JobHandlers) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("schedule id is required")})
		return
	}

	deleted, err := h.Scheduler.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
