package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/competitor"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// lookupBrandLimit bounds how many brands feed the already-have lookup.
const lookupBrandLimit = 1000

// lookupLoadConcurrency bounds parallel per-brand backlink loads while
// building lookups.
const lookupLoadConcurrency = 4

// ImportServiceOptions groups dependencies for ImportService.
type ImportServiceOptions struct {
	Brands    core.BrandRepository    // Required: brand repository
	Backlinks core.BacklinkRepository // Required: backlink repository
	Prospects core.ProspectRepository // Required: prospect repository
	Imports   core.ImportRepository   // Required: import batch repository
	Logger    *slog.Logger            // Optional: structured logger
}

// ImportService classifies competitor-backlink imports against the domains
// the portfolio already holds or is prospecting, and persists an audit
// record of every batch.
type ImportService struct {
	brands    core.BrandRepository
	backlinks core.BacklinkRepository
	prospects core.ProspectRepository
	imports   core.ImportRepository
	logger    *slog.Logger
}

// NewImportService constructs a new ImportService.
func NewImportService(opts ImportServiceOptions) *ImportService {
	if opts.Brands == nil {
		panic("BrandRepository is required")
	}
	if opts.Backlinks == nil {
		panic("BacklinkRepository is required")
	}
	if opts.Prospects == nil {
		panic("ProspectRepository is required")
	}
	if opts.Imports == nil {
		panic("ImportRepository is required")
	}
	return &ImportService{
		brands:    opts.Brands,
		backlinks: opts.Backlinks,
		prospects: opts.Prospects,
		imports:   opts.Imports,
		logger:    opts.Logger,
	}
}

// Classify classifies one import batch and records it. Already-have checks
// run against every brand's backlinks so a domain another managed brand
// holds is still flagged; prospect checks are scoped to the importing
// brand's own pipeline. A malformed row is skipped and sampled into the
// result, never aborting the batch.
func (s *ImportService) Classify(ctx context.Context, req *model.ClassifyImportRequest) (*model.ClassifyImportResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	adapter, err := competitor.NewRowAdapterWithPaths(req.FieldPaths)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid field paths")
	}

	lookups, err := s.buildLookups(ctx, req.BrandID)
	if err != nil {
		return nil, err
	}

	classified := competitor.Classify(adapter.AdaptAll(req.Rows), lookups)
	result := toImportResult(classified)

	batch, err := s.imports.RecordBatch(ctx, core.RecordImportBatchParams{
		BrandID: req.BrandID,
		Source:  req.Source,
		Result:  result,
	})
	if err != nil {
		return nil, fmt.Errorf("record import batch: %w", mapRepoError(err))
	}
	result.BatchID = batch.ID

	if s.logger != nil {
		s.logger.InfoContext(ctx, "import batch classified",
			"batch_id", batch.ID,
			"brand_id", req.BrandID,
			"source", req.Source,
			"rows", len(result.Rows),
			"new", result.NewOpportunities,
			"already_have", result.AlreadyHave,
			"in_prospects", result.InProspects,
			"skipped", result.Skipped,
		)
	}

	return result, nil
}

// GetBatch returns one import batch summary.
func (s *ImportService) GetBatch(ctx context.Context, id string) (*model.ImportBatch, error) {
	batch, err := s.imports.GetBatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get import batch: %w", mapRepoError(err))
	}
	return batch, nil
}

// ListBatches returns import batch summaries, newest first.
func (s *ImportService) ListBatches(ctx context.Context, opts model.ImportBatchListOptions) ([]*model.ImportBatch, error) {
	p := normalizePagination(opts.Limit, opts.Offset)
	opts.Limit = p.Limit
	opts.Offset = p.Offset

	batches, err := s.imports.ListBatches(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list import batches: %w", err)
	}
	return batches, nil
}

// ListRows returns the audit rows of one batch in their stored order.
func (s *ImportService) ListRows(ctx context.Context, batchID string) ([]*model.ImportRowAudit, error) {
	if batchID == "" {
		return nil, apperrors.Validation("batch id is required")
	}
	rows, err := s.imports.ListRows(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("list import rows: %w", mapRepoError(err))
	}
	return rows, nil
}

// buildLookups snapshots the existing-domain state a batch is classified
// against: backlink domains across all brands, prospect domains and raw
// URLs for the importing brand.
func (s *ImportService) buildLookups(ctx context.Context, brandID string) (competitor.Lookups, error) {
	lookups := competitor.Lookups{
		BacklinkDomains: make(map[string][]string),
		ProspectDomains: make(map[string]string),
		ProspectURLs:    make(map[string]struct{}),
	}

	brands, err := s.brands.List(ctx, model.BrandListOptions{Limit: lookupBrandLimit})
	if err != nil {
		return lookups, fmt.Errorf("load brands for lookups: %w", err)
	}

	type brandLinks struct {
		name      string
		backlinks []*model.Backlink
	}

	results := make([]brandLinks, len(brands))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupLoadConcurrency)
	for i, brand := range brands {
		g.Go(func() error {
			backlinks, loadErr := s.backlinks.ListByBrand(gctx, brand.ID)
			if loadErr != nil {
				return fmt.Errorf("load backlinks for brand %s: %w", brand.ID, loadErr)
			}
			results[i] = brandLinks{name: brand.Name, backlinks: backlinks}
			return nil
		})
	}

	var prospects []*model.Prospect
	g.Go(func() error {
		var loadErr error
		prospects, loadErr = s.prospects.ListByBrand(gctx, brandID)
		if loadErr != nil {
			return fmt.Errorf("load prospects: %w", loadErr)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return lookups, err
	}

	for _, r := range results {
		seen := make(map[string]struct{})
		for _, b := range r.backlinks {
			if b.Domain == "" {
				continue
			}
			if _, dup := seen[b.Domain]; dup {
				continue
			}
			seen[b.Domain] = struct{}{}
			lookups.BacklinkDomains[b.Domain] = append(lookups.BacklinkDomains[b.Domain], r.name)
		}
	}

	for _, p := range prospects {
		if p.Domain != "" {
			if _, exists := lookups.ProspectDomains[p.Domain]; !exists {
				lookups.ProspectDomains[p.Domain] = p.Status.String()
			}
		}
		lookups.ProspectURLs[p.URL] = struct{}{}
	}

	return lookups, nil
}

func toImportResult(res competitor.Result) *model.ClassifyImportResult {
	out := &model.ClassifyImportResult{
		Rows:             make([]model.ClassifiedImportRow, 0, len(res.Rows)),
		NewOpportunities: res.NewOpportunities,
		AlreadyHave:      res.AlreadyHave,
		InProspects:      res.InProspects,
		Skipped:          res.Skipped,
		SkipReasons:      res.SkipReasons,
	}
	for _, row := range res.Rows {
		out.Rows = append(out.Rows, model.ClassifiedImportRow{
			URL:            row.URL,
			Domain:         row.Domain,
			DomainRating:   row.DomainRating,
			DomainTraffic:  row.DomainTraffic,
			AnchorText:     row.AnchorText,
			Nofollow:       row.Nofollow,
			Classification: string(row.Classification),
			Brands:         row.Brands,
			ProspectStatus: row.ProspectStatus,
		})
	}
	return out
}
