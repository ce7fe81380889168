package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// ProspectServiceOptions groups dependencies for ProspectService.
type ProspectServiceOptions struct {
	Repo   core.ProspectRepository // Required: prospect repository
	Logger *slog.Logger            // Optional: structured logger
}

// ProspectService provides business logic for the outreach pipeline.
type ProspectService struct {
	repo   core.ProspectRepository
	logger *slog.Logger
}

// NewProspectService constructs a new ProspectService.
func NewProspectService(opts ProspectServiceOptions) *ProspectService {
	if opts.Repo == nil {
		panic("ProspectRepository is required")
	}
	return &ProspectService{repo: opts.Repo, logger: opts.Logger}
}

// Create adds a new prospect to the pipeline.
func (s *ProspectService) Create(ctx context.Context, req *model.CreateProspectRequest) (*model.Prospect, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	prospect, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create prospect: %w", mapRepoError(err))
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "prospect created", "id", prospect.ID, "domain", prospect.Domain, "status", prospect.Status)
	}
	return prospect, nil
}

// GetByID retrieves a prospect by ID.
func (s *ProspectService) GetByID(ctx context.Context, id string) (*model.Prospect, error) {
	prospect, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get prospect by id: %w", mapRepoError(err))
	}
	return prospect, nil
}

// List returns a page of prospects with optional filters.
func (s *ProspectService) List(ctx context.Context, opts model.ProspectListOptions) ([]*model.Prospect, error) {
	p := normalizePagination(opts.Limit, opts.Offset)
	opts.Limit = p.Limit
	opts.Offset = p.Offset

	prospects, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	return prospects, nil
}

// Update updates an existing prospect. Moving a prospect to contacted
// without a contact date stamps the current time.
func (s *ProspectService) Update(ctx context.Context, id string, req model.UpdateProspectRequest) (*model.Prospect, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if req.Status != nil && *req.Status == model.ProspectStatusContacted && req.ContactedOn == nil {
		now := time.Now().UTC()
		req.ContactedOn = &now
	}

	prospect, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update prospect: %w", mapRepoError(err))
	}
	return prospect, nil
}

// Delete deletes a prospect by ID.
func (s *ProspectService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete prospect: %w", mapRepoError(err))
	}
	return deleted, nil
}

// Stats returns per-status prospect counts for a brand.
func (s *ProspectService) Stats(ctx context.Context, brandID string) (*model.ProspectStats, error) {
	if brandID == "" {
		return nil, apperrors.Validation("brand_id is required")
	}

	stats, err := s.repo.Stats(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("prospect stats: %w", mapRepoError(err))
	}
	return stats, nil
}
