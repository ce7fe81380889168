package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// sweepPageSize is how many reconciled domains a sweep reads per page.
const sweepPageSize = 500

// ImposterServiceOptions groups dependencies for ImposterService.
type ImposterServiceOptions struct {
	Watches     core.ImposterWatchRepository // Required: imposter watch repository
	LinkDomains core.LinkDomainRepository    // Required: reconciled domain repository
	Logger      *slog.Logger                 // Optional: structured logger
}

// ImposterService manages lookalike-domain watch entries and sweeps the
// reconciled domain inventory for matches.
type ImposterService struct {
	watches     core.ImposterWatchRepository
	linkDomains core.LinkDomainRepository
	logger      *slog.Logger
}

// NewImposterService constructs a new ImposterService.
func NewImposterService(opts ImposterServiceOptions) *ImposterService {
	if opts.Watches == nil {
		panic("ImposterWatchRepository is required")
	}
	if opts.LinkDomains == nil {
		panic("LinkDomainRepository is required")
	}
	return &ImposterService{
		watches:     opts.Watches,
		linkDomains: opts.LinkDomains,
		logger:      opts.Logger,
	}
}

// Create adds a watch entry.
func (s *ImposterService) Create(ctx context.Context, req *model.CreateImposterWatchRequest) (*model.ImposterWatch, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	watch, err := s.watches.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create imposter watch: %w", mapRepoError(err))
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "imposter watch created",
			"id", watch.ID, "pattern", watch.Pattern, "pattern_type", watch.PatternType)
	}
	return watch, nil
}

// GetByID retrieves a watch entry by ID.
func (s *ImposterService) GetByID(ctx context.Context, id string) (*model.ImposterWatch, error) {
	watch, err := s.watches.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get imposter watch by id: %w", mapRepoError(err))
	}
	return watch, nil
}

// List returns a page of watch entries with optional filters.
func (s *ImposterService) List(ctx context.Context, opts model.ImposterWatchListOptions) ([]*model.ImposterWatch, error) {
	p := normalizePagination(opts.Limit, opts.Offset)
	opts.Limit = p.Limit
	opts.Offset = p.Offset

	watches, err := s.watches.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list imposter watches: %w", err)
	}
	return watches, nil
}

// Update updates a watch entry.
func (s *ImposterService) Update(ctx context.Context, id string, req model.UpdateImposterWatchRequest) (*model.ImposterWatch, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	watch, err := s.watches.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update imposter watch: %w", mapRepoError(err))
	}
	return watch, nil
}

// Delete deletes a watch entry by ID.
func (s *ImposterService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.watches.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete imposter watch: %w", mapRepoError(err))
	}
	return deleted, nil
}

// Sweep matches a brand's active watch entries against its reconciled
// domain inventory. Each watch that matches gets its counter bumped once
// per sweep regardless of how many domains it hit.
func (s *ImposterService) Sweep(ctx context.Context, brandID string) ([]model.ImposterMatch, error) {
	if brandID == "" {
		return nil, apperrors.Validation("brand_id is required")
	}

	watches, err := s.watches.ListActiveByBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("list active watches: %w", err)
	}
	if len(watches) == 0 {
		return nil, nil
	}

	var matches []model.ImposterMatch
	matchedWatches := make(map[string]struct{})

	offset := 0
	for {
		page, err := s.linkDomains.List(ctx, model.LinkDomainListOptions{
			BrandID: &brandID,
			Limit:   sweepPageSize,
			Offset:  offset,
		})
		if err != nil {
			return nil, fmt.Errorf("list link domains for sweep: %w", err)
		}

		for _, row := range page {
			for _, watch := range watches {
				if !linkdom.Match(row.Domain, watch.Pattern, watch.PatternType) {
					continue
				}
				matches = append(matches, model.ImposterMatch{
					WatchID:     watch.ID,
					Pattern:     watch.Pattern,
					PatternType: watch.PatternType,
					Domain:      row.Domain,
				})
				matchedWatches[watch.ID] = struct{}{}
			}
		}

		if len(page) < sweepPageSize {
			break
		}
		offset += sweepPageSize
	}

	now := time.Now().UTC()
	for watchID := range matchedWatches {
		if err := s.watches.RecordMatch(ctx, watchID, now); err != nil {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "record imposter match failed", "watch_id", watchID, "error", err)
			}
		}
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "imposter sweep finished",
			"brand_id", brandID, "watches", len(watches), "matches", len(matches))
	}
	return matches, nil
}
