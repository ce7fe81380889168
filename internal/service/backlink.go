package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// BacklinkServiceOptions groups dependencies for BacklinkService.
type BacklinkServiceOptions struct {
	Repo   core.BacklinkRepository // Required: backlink repository
	Logger *slog.Logger            // Optional: structured logger
}

// BacklinkService provides business logic for confirmed backlink records.
type BacklinkService struct {
	repo   core.BacklinkRepository
	logger *slog.Logger
}

// NewBacklinkService constructs a new BacklinkService.
func NewBacklinkService(opts BacklinkServiceOptions) *BacklinkService {
	if opts.Repo == nil {
		panic("BacklinkRepository is required")
	}
	return &BacklinkService{repo: opts.Repo, logger: opts.Logger}
}

// Create records a new backlink.
func (s *BacklinkService) Create(ctx context.Context, req *model.CreateBacklinkRequest) (*model.Backlink, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	backlink, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create backlink: %w", mapRepoError(err))
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "backlink created", "id", backlink.ID, "domain", backlink.Domain)
	}
	return backlink, nil
}

// GetByID retrieves a backlink by ID.
func (s *BacklinkService) GetByID(ctx context.Context, id string) (*model.Backlink, error) {
	backlink, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get backlink by id: %w", mapRepoError(err))
	}
	return backlink, nil
}

// List returns a page of backlinks with optional filters.
func (s *BacklinkService) List(ctx context.Context, opts model.BacklinkListOptions) ([]*model.Backlink, error) {
	p := normalizePagination(opts.Limit, opts.Offset)
	opts.Limit = p.Limit
	opts.Offset = p.Offset

	backlinks, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list backlinks: %w", err)
	}
	return backlinks, nil
}

// Update updates an existing backlink.
func (s *BacklinkService) Update(ctx context.Context, id string, req model.UpdateBacklinkRequest) (*model.Backlink, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	backlink, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update backlink: %w", mapRepoError(err))
	}
	return backlink, nil
}

// Delete deletes a backlink by ID.
func (s *BacklinkService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete backlink: %w", mapRepoError(err))
	}
	return deleted, nil
}
