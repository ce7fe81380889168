package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// statusForCode maps application error codes onto HTTP statuses. Anything
// unrecognized is treated as an internal failure.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
		return http.StatusConflict
	case apperrors.ErrCodeUpstream:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError renders a service-layer error as JSON. AppErrors carry their
// own code; everything else becomes a generic 500 so internals don't leak.
func WriteAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body := map[string]string{
			"error":   string(appErr.Code),
			"message": appErr.Message,
		}
		if appErr.Field != "" {
			body["field"] = appErr.Field
		}
		WriteJSON(w, statusForCode(appErr.Code), body)
		return
	}

	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal",
		Err:     errors.New("internal server error"),
	})
}
