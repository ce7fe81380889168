package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linkpilot/linkpilot-api/internal/data"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

func TestMapRepoError(t *testing.T) {
	tests := []struct {
		name     string
		in       error
		wantCode apperrors.ErrorCode
	}{
		{"brand not found", data.ErrBrandNotFound, apperrors.ErrCodeNotFound},
		{"backlink not found", data.ErrBacklinkNotFound, apperrors.ErrCodeNotFound},
		{"prospect not found", data.ErrProspectNotFound, apperrors.ErrCodeNotFound},
		{"link domain not found", data.ErrLinkDomainNotFound, apperrors.ErrCodeNotFound},
		{"keyword not found", data.ErrKeywordNotFound, apperrors.ErrCodeNotFound},
		{"batch not found", data.ErrBatchNotFound, apperrors.ErrCodeNotFound},
		{"watch not found", data.ErrWatchNotFound, apperrors.ErrCodeNotFound},
		{"job not found", data.ErrJobNotFound, apperrors.ErrCodeNotFound},
		{"schedule not found", data.ErrScheduleNotFound, apperrors.ErrCodeNotFound},
		{"brand name exists", data.ErrBrandNameExists, apperrors.ErrCodeConflict},
		{"keyword exists", data.ErrKeywordExists, apperrors.ErrCodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapRepoError(tt.in)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(mapped))
			assert.ErrorIs(t, mapped, tt.in)
		})
	}
}

func TestMapRepoError_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("query brand: %w", data.ErrBrandNotFound)
	mapped := mapRepoError(wrapped)
	assert.True(t, apperrors.IsNotFound(mapped))
}

func TestMapRepoError_Passthrough(t *testing.T) {
	boom := errors.New("connection refused")
	assert.Equal(t, boom, mapRepoError(boom))
	assert.Nil(t, mapRepoError(nil))
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"zero values get defaults", 0, 0, 50, 0},
		{"negative limit gets default", -10, 0, 50, 0},
		{"negative offset clamped", 20, -1, 20, 0},
		{"limit over max capped", 1001, 0, 1000, 0},
		{"valid values unchanged", 100, 200, 100, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := normalizePagination(tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestIsContextCancellation(t *testing.T) {
	assert.False(t, isContextCancellation(nil))
	assert.False(t, isContextCancellation(errors.New("boom")))
	assert.True(t, isContextCancellation(context.Canceled))
	assert.True(t, isContextCancellation(context.DeadlineExceeded))
	assert.True(t, isContextCancellation(fmt.Errorf("query: %w", context.Canceled)))
}
