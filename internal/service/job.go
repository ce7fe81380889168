package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// RankJobServiceOptions groups dependencies for RankJobService.
type RankJobServiceOptions struct {
	Jobs   core.RankJobRepository // Required: rank job repository
	Brands core.BrandRepository   // Required: brand repository
	Logger *slog.Logger           // Optional: structured logger
}

// RankJobService exposes the rank fetch queue to the API: on-demand
// enqueueing, job inspection, and queue statistics. Leasing and completion
// belong to the worker, not this service.
type RankJobService struct {
	jobs   core.RankJobRepository
	brands core.BrandRepository
	logger *slog.Logger
}

// NewRankJobService constructs a new RankJobService.
func NewRankJobService(opts RankJobServiceOptions) *RankJobService {
	if opts.Jobs == nil {
		panic("RankJobRepository is required")
	}
	if opts.Brands == nil {
		panic("BrandRepository is required")
	}
	return &RankJobService{
		jobs:   opts.Jobs,
		brands: opts.Brands,
		logger: opts.Logger,
	}
}

// Enqueue queues an on-demand rank fetch for a brand. Enqueueing is
// idempotent while a pending job for the brand exists.
func (s *RankJobService) Enqueue(ctx context.Context, brandID string) (*model.RankFetchJob, error) {
	if brandID == "" {
		return nil, apperrors.Validation("brand_id is required")
	}

	if _, err := s.brands.GetByID(ctx, brandID); err != nil {
		return nil, fmt.Errorf("check brand before enqueue: %w", mapRepoError(err))
	}

	job, err := s.jobs.Enqueue(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("enqueue rank job: %w", mapRepoError(err))
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "rank job enqueued", "job_id", job.ID, "brand_id", brandID)
	}
	return job, nil
}

// GetByID retrieves a rank fetch job by ID.
func (s *RankJobService) GetByID(ctx context.Context, id string) (*model.RankFetchJob, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rank job by id: %w", mapRepoError(err))
	}
	return job, nil
}

// Stats returns queue depth by job status.
func (s *RankJobService) Stats(ctx context.Context) (*model.JobStats, error) {
	stats, err := s.jobs.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("rank job stats: %w", err)
	}
	return stats, nil
}
