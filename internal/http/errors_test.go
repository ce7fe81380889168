package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

func TestWriteAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        apperrors.Validation("name is required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation",
		},
		{
			name:       "not found",
			err:        apperrors.NotFound("brand not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "conflict",
			err:        apperrors.Conflict("brand name already exists"),
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
		},
		{
			name:       "foreign key",
			err:        &apperrors.AppError{Code: apperrors.ErrCodeForeignKey, Message: "brand is referenced"},
			wantStatus: http.StatusConflict,
			wantCode:   "foreign_key",
		},
		{
			name:       "upstream",
			err:        apperrors.Upstream("ranking provider unavailable"),
			wantStatus: http.StatusBadGateway,
			wantCode:   "upstream_unavailable",
		},
		{
			name:       "timeout",
			err:        &apperrors.AppError{Code: apperrors.ErrCodeTimeout, Message: "query timed out"},
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "timeout",
		},
		{
			name:       "internal",
			err:        apperrors.Internal("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAppError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestWriteAppError_WrappedAppError(t *testing.T) {
	inner := apperrors.NotFound("keyword not found")
	wrapped := apperrors.Wrap(inner, apperrors.ErrCodeNotFound, "lookup failed")

	rec := httptest.NewRecorder()
	WriteAppError(rec, wrapped)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteAppError_PlainErrorDoesNotLeak(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAppError(rec, errors.New("pq: connection refused on 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestWriteAppError_ValidationFieldIncluded(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAppError(rec, apperrors.ValidationField("country", "must be a two-letter code"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"country"`)
}
