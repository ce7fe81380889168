package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// KeywordServiceOptions groups dependencies for KeywordService.
type KeywordServiceOptions struct {
	Repo   core.TrackedKeywordRepository // Required: tracked keyword repository
	Logger *slog.Logger                  // Optional: structured logger
}

// KeywordService provides business logic for tracked keywords.
type KeywordService struct {
	repo   core.TrackedKeywordRepository
	logger *slog.Logger
}

// NewKeywordService constructs a new KeywordService.
func NewKeywordService(opts KeywordServiceOptions) *KeywordService {
	if opts.Repo == nil {
		panic("TrackedKeywordRepository is required")
	}
	return &KeywordService{repo: opts.Repo, logger: opts.Logger}
}

// Create starts tracking a keyword for a brand. The tracked domain defaults
// to the brand's domain when the request leaves it empty.
func (s *KeywordService) Create(ctx context.Context, req *model.CreateTrackedKeywordRequest) (*model.TrackedKeyword, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	kw, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create tracked keyword: %w", mapRepoError(err))
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "keyword tracked", "id", kw.ID, "keyword", kw.Keyword, "country", kw.Country)
	}
	return kw, nil
}

// GetByID retrieves a tracked keyword by ID.
func (s *KeywordService) GetByID(ctx context.Context, id string) (*model.TrackedKeyword, error) {
	kw, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tracked keyword by id: %w", mapRepoError(err))
	}
	return kw, nil
}

// List returns a page of tracked keywords with optional filters.
func (s *KeywordService) List(ctx context.Context, opts model.TrackedKeywordListOptions) ([]*model.TrackedKeyword, error) {
	p := normalizePagination(opts.Limit, opts.Offset)
	opts.Limit = p.Limit
	opts.Offset = p.Offset

	keywords, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list tracked keywords: %w", err)
	}
	return keywords, nil
}

// Update updates a tracked keyword's active flag or domain.
func (s *KeywordService) Update(ctx context.Context, id string, req model.UpdateTrackedKeywordRequest) (*model.TrackedKeyword, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	kw, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update tracked keyword: %w", mapRepoError(err))
	}
	return kw, nil
}

// Delete stops tracking a keyword. Its rank history cascades in the
// database.
func (s *KeywordService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete tracked keyword: %w", mapRepoError(err))
	}
	return deleted, nil
}
