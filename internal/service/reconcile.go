package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/domain/reconcile"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// ReconcileServiceOptions groups dependencies for ReconcileService.
type ReconcileServiceOptions struct {
	Backlinks   core.BacklinkRepository   // Required: backlink repository
	Prospects   core.ProspectRepository   // Required: prospect repository
	LinkDomains core.LinkDomainRepository // Required: link domain repository
	Logger      *slog.Logger              // Optional: structured logger
}

// ReconcileService folds a brand's backlinks and prospects into canonical
// per-domain link_domains rows. The fold itself is pure; this service owns
// loading the inputs and persisting the aggregates.
type ReconcileService struct {
	backlinks   core.BacklinkRepository
	prospects   core.ProspectRepository
	linkDomains core.LinkDomainRepository
	logger      *slog.Logger
}

// NewReconcileService constructs a new ReconcileService.
func NewReconcileService(opts ReconcileServiceOptions) *ReconcileService {
	if opts.Backlinks == nil {
		panic("BacklinkRepository is required")
	}
	if opts.Prospects == nil {
		panic("ProspectRepository is required")
	}
	if opts.LinkDomains == nil {
		panic("LinkDomainRepository is required")
	}
	return &ReconcileService{
		backlinks:   opts.Backlinks,
		prospects:   opts.Prospects,
		linkDomains: opts.LinkDomains,
		logger:      opts.Logger,
	}
}

// Reconcile runs one reconciliation pass for a brand. Each aggregate is
// written independently; a domain that fails to persist is reported in the
// result and never aborts the pass. Stale rows from earlier passes are
// swept only when every domain committed, so a failed domain's previous
// state survives until a clean pass.
func (s *ReconcileService) Reconcile(ctx context.Context, brandID string) (*model.ReconcileResult, error) {
	if brandID == "" {
		return nil, apperrors.Validation("brand_id is required")
	}

	startedAt := time.Now().UTC()

	backlinks, prospects, err := s.loadInputs(ctx, brandID)
	if err != nil {
		return nil, err
	}

	aggregates := reconcile.Reconcile(toBacklinkRecords(backlinks), toProspectRecords(prospects))

	// Deterministic write order keeps retries and logs comparable.
	domains := make([]string, 0, len(aggregates))
	for domain := range aggregates {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	result := &model.ReconcileResult{
		BrandID:      brandID,
		DomainsTotal: len(domains),
		ReconciledAt: startedAt,
	}

	for _, domain := range domains {
		agg := aggregates[domain]
		if _, upsertErr := s.linkDomains.Upsert(ctx, upsertRequestFor(brandID, agg)); upsertErr != nil {
			if isContextCancellation(upsertErr) {
				return nil, fmt.Errorf("reconcile brand %s: %w", brandID, upsertErr)
			}
			result.DomainsFailed++
			result.Failures = append(result.Failures, model.DomainFailure{
				Domain: domain,
				Reason: upsertErr.Error(),
			})
			if s.logger != nil {
				s.logger.WarnContext(ctx, "link domain upsert failed", "brand_id", brandID, "domain", domain, "error", upsertErr)
			}
			continue
		}
		result.DomainsWritten++
	}

	if result.DomainsFailed == 0 {
		if _, staleErr := s.linkDomains.DeleteStale(ctx, brandID, startedAt); staleErr != nil {
			return nil, fmt.Errorf("sweep stale link domains: %w", staleErr)
		}
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "reconciliation pass finished",
			"brand_id", brandID,
			"domains_total", result.DomainsTotal,
			"domains_written", result.DomainsWritten,
			"domains_failed", result.DomainsFailed,
		)
	}

	return result, nil
}

// ListDomains returns reconciled link domain rows.
func (s *ReconcileService) ListDomains(ctx context.Context, opts model.LinkDomainListOptions) ([]*model.LinkDomain, error) {
	p := normalizePagination(opts.Limit, opts.Offset)
	opts.Limit = p.Limit
	opts.Offset = p.Offset

	rows, err := s.linkDomains.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list link domains: %w", err)
	}
	return rows, nil
}

// GetDomain returns one reconciled aggregate by brand and domain.
func (s *ReconcileService) GetDomain(ctx context.Context, brandID, domain string) (*model.LinkDomain, error) {
	row, err := s.linkDomains.GetByDomain(ctx, brandID, domain)
	if err != nil {
		return nil, fmt.Errorf("get link domain: %w", mapRepoError(err))
	}
	return row, nil
}

// loadInputs fetches both input sets concurrently.
func (s *ReconcileService) loadInputs(ctx context.Context, brandID string) ([]*model.Backlink, []*model.Prospect, error) {
	var (
		backlinks []*model.Backlink
		prospects []*model.Prospect
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		backlinks, err = s.backlinks.ListByBrand(gctx, brandID)
		if err != nil {
			return fmt.Errorf("load backlinks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		prospects, err = s.prospects.ListByBrand(gctx, brandID)
		if err != nil {
			return fmt.Errorf("load prospects: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return backlinks, prospects, nil
}

func toBacklinkRecords(backlinks []*model.Backlink) []reconcile.BacklinkRecord {
	records := make([]reconcile.BacklinkRecord, 0, len(backlinks))
	for _, b := range backlinks {
		records = append(records, reconcile.BacklinkRecord{
			ID:            b.ID,
			URL:           b.URL,
			DomainRating:  b.DomainRating,
			DomainTraffic: b.DomainTraffic,
			Nofollow:      b.Nofollow,
		})
	}
	return records
}

func toProspectRecords(prospects []*model.Prospect) []reconcile.ProspectRecord {
	records := make([]reconcile.ProspectRecord, 0, len(prospects))
	for _, p := range prospects {
		records = append(records, reconcile.ProspectRecord{
			ID:             p.ID,
			URL:            p.URL,
			DomainRating:   p.DomainRating,
			DomainTraffic:  p.DomainTraffic,
			Nofollow:       p.Nofollow,
			ContactedOn:    p.ContactedOn,
			ContactMethod:  p.ContactMethod,
			ContactEmail:   p.ContactEmail,
			ContactFormURL: p.ContactFormURL,
			Remarks:        p.Remarks,
		})
	}
	return records
}

func upsertRequestFor(brandID string, agg *reconcile.Aggregate) *model.UpsertLinkDomainRequest {
	return &model.UpsertLinkDomainRequest{
		BrandID:        brandID,
		Domain:         agg.Domain,
		ExampleURL:     agg.ExampleURL,
		DomainRating:   agg.DomainRating,
		DomainTraffic:  agg.DomainTraffic,
		Nofollow:       agg.Nofollow,
		ContactedOn:    agg.ContactedOn,
		ContactMethod:  agg.ContactMethod,
		ContactEmail:   agg.ContactEmail,
		ContactFormURL: agg.ContactFormURL,
		Remarks:        agg.Remarks,
		BacklinkIDs:    agg.BacklinkIDs,
		ProspectIDs:    agg.ProspectIDs,
	}
}
