package service

import (
	"context"
	"errors"

	"github.com/linkpilot/linkpilot-api/internal/data"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// mapRepoError converts data-layer sentinels into AppErrors so the
// transport layer can translate them to status codes without importing
// internal/data. Errors it does not recognize pass through unchanged.
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, data.ErrBrandNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "brand not found")
	case errors.Is(err, data.ErrBacklinkNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "backlink not found")
	case errors.Is(err, data.ErrProspectNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "prospect not found")
	case errors.Is(err, data.ErrLinkDomainNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "link domain not found")
	case errors.Is(err, data.ErrKeywordNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "tracked keyword not found")
	case errors.Is(err, data.ErrBatchNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "import batch not found")
	case errors.Is(err, data.ErrWatchNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "imposter watch not found")
	case errors.Is(err, data.ErrJobNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "rank job not found")
	case errors.Is(err, data.ErrScheduleNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "rank schedule not found")
	case errors.Is(err, data.ErrBrandNameExists):
		return apperrors.Wrap(err, apperrors.ErrCodeConflict, "a brand with this name already exists")
	case errors.Is(err, data.ErrKeywordExists):
		return apperrors.Wrap(err, apperrors.ErrCodeConflict, "keyword is already tracked for this brand and country")
	default:
		return err
	}
}

// paginationParams holds normalized pagination parameters.
type paginationParams struct {
	Limit  int
	Offset int
}

// normalizePagination clamps pagination parameters to safe defaults.
// Default limit: 50, max limit: 1000, min offset: 0.
func normalizePagination(limit, offset int) paginationParams {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return paginationParams{Limit: limit, Offset: offset}
}

func isContextCancellation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
