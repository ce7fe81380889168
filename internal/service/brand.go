// Package service provides business logic services for the linkpilot
// reconciliation and ranking system.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// BrandServiceOptions groups dependencies for BrandService.
type BrandServiceOptions struct {
	Repo   core.BrandRepository // Required: brand repository
	Logger *slog.Logger         // Optional: structured logger
}

// BrandService provides business logic for brand operations.
type BrandService struct {
	repo   core.BrandRepository
	logger *slog.Logger
}

// NewBrandService constructs a new BrandService.
func NewBrandService(opts BrandServiceOptions) *BrandService {
	if opts.Repo == nil {
		panic("BrandRepository is required")
	}
	return &BrandService{repo: opts.Repo, logger: opts.Logger}
}

// Create creates a new brand.
func (s *BrandService) Create(ctx context.Context, req *model.CreateBrandRequest) (*model.Brand, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	brand, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create brand: %w", mapRepoError(err))
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "brand created", "id", brand.ID, "name", brand.Name, "domain", brand.Domain)
	}
	return brand, nil
}

// GetByID retrieves a brand by ID.
func (s *BrandService) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get brand by id: %w", mapRepoError(err))
	}
	return brand, nil
}

// List returns a page of brands with optional filters.
func (s *BrandService) List(ctx context.Context, opts model.BrandListOptions) ([]*model.Brand, error) {
	p := normalizePagination(opts.Limit, opts.Offset)
	opts.Limit = p.Limit
	opts.Offset = p.Offset

	brands, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

// Update updates an existing brand.
func (s *BrandService) Update(ctx context.Context, id string, req model.UpdateBrandRequest) (*model.Brand, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	brand, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update brand: %w", mapRepoError(err))
	}
	return brand, nil
}

// Delete deletes a brand by ID. Backlinks, prospects, keywords, and rank
// history cascade in the database.
func (s *BrandService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete brand: %w", mapRepoError(err))
	}

	if s.logger != nil && deleted {
		s.logger.InfoContext(ctx, "brand deleted", "id", id)
	}
	return deleted, nil
}
