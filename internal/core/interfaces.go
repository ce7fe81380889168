package core

import (
	"context"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// BrandRepository defines the interface for brand data operations.
type BrandRepository interface {
	Create(ctx context.Context, req *model.CreateBrandRequest) (*model.Brand, error)
	GetByID(ctx context.Context, id string) (*model.Brand, error)
	GetByName(ctx context.Context, name string) (*model.Brand, error)
	List(ctx context.Context, opts model.BrandListOptions) ([]*model.Brand, error)
	Update(ctx context.Context, id string, req model.UpdateBrandRequest) (*model.Brand, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// BacklinkRepository defines the interface for backlink data operations.
type BacklinkRepository interface {
	Create(ctx context.Context, req *model.CreateBacklinkRequest) (*model.Backlink, error)
	GetByID(ctx context.Context, id string) (*model.Backlink, error)
	List(ctx context.Context, opts model.BacklinkListOptions) ([]*model.Backlink, error)
	// ListByBrand returns every backlink for a brand without paging. Used by
	// reconciliation and import classification, which need the full set.
	ListByBrand(ctx context.Context, brandID string) ([]*model.Backlink, error)
	Update(ctx context.Context, id string, req model.UpdateBacklinkRequest) (*model.Backlink, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ProspectRepository defines the interface for prospect data operations.
type ProspectRepository interface {
	Create(ctx context.Context, req *model.CreateProspectRequest) (*model.Prospect, error)
	GetByID(ctx context.Context, id string) (*model.Prospect, error)
	List(ctx context.Context, opts model.ProspectListOptions) ([]*model.Prospect, error)
	// ListByBrand returns every prospect for a brand without paging.
	ListByBrand(ctx context.Context, brandID string) ([]*model.Prospect, error)
	Update(ctx context.Context, id string, req model.UpdateProspectRequest) (*model.Prospect, error)
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context, brandID string) (*model.ProspectStats, error)
}

// LinkDomainRepository defines the interface for reconciled link domain rows.
type LinkDomainRepository interface {
	// Upsert inserts the aggregate or, on a (brand_id, domain) conflict,
	// updates the existing row in place.
	Upsert(ctx context.Context, req *model.UpsertLinkDomainRequest) (*model.LinkDomain, error)
	GetByDomain(ctx context.Context, brandID, domain string) (*model.LinkDomain, error)
	List(ctx context.Context, opts model.LinkDomainListOptions) ([]*model.LinkDomain, error)
	// DeleteStale removes rows for a brand not touched since the given cutoff.
	// Returns the number of rows deleted.
	DeleteStale(ctx context.Context, brandID string, before time.Time) (int64, error)
}

// TrackedKeywordRepository defines the interface for tracked keyword data operations.
type TrackedKeywordRepository interface {
	Create(ctx context.Context, req *model.CreateTrackedKeywordRequest) (*model.TrackedKeyword, error)
	GetByID(ctx context.Context, id string) (*model.TrackedKeyword, error)
	List(ctx context.Context, opts model.TrackedKeywordListOptions) ([]*model.TrackedKeyword, error)
	// ListActiveByBrand returns the active keywords for a brand. Rank fetch
	// jobs and movers reports operate on this set.
	ListActiveByBrand(ctx context.Context, brandID string) ([]*model.TrackedKeyword, error)
	Update(ctx context.Context, id string, req model.UpdateTrackedKeywordRequest) (*model.TrackedKeyword, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// RankHistoryRepository defines the interface for daily rank observations.
type RankHistoryRepository interface {
	// Record upserts one observation for (keyword, day). A second write for
	// the same day replaces the first.
	Record(ctx context.Context, req *model.RecordRankRequest) (*model.RankObservation, error)
	History(ctx context.Context, opts model.RankHistoryOptions) ([]*model.RankObservation, error)
	// LatestTwoDays returns observations for a brand's keywords on the two
	// most recent distinct days on record, newest day first.
	LatestTwoDays(ctx context.Context, brandID string) ([]*model.RankObservation, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// RankAlertRepository defines the interface for persisted significant movers.
type RankAlertRepository interface {
	CreateBatch(ctx context.Context, alerts []*model.RankAlert) (int, error)
	List(ctx context.Context, opts model.RankAlertListOptions) ([]*model.RankAlert, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// RecordImportBatchParams groups parameters for ImportRepository.RecordBatch.
type RecordImportBatchParams struct {
	BrandID string
	Source  string
	Result  *model.ClassifyImportResult
}

// ImportRepository defines the interface for import batch audit records.
type ImportRepository interface {
	// RecordBatch persists the batch summary and an audit copy of each
	// classified row, returning the stored batch.
	RecordBatch(ctx context.Context, params RecordImportBatchParams) (*model.ImportBatch, error)
	GetBatch(ctx context.Context, id string) (*model.ImportBatch, error)
	ListBatches(ctx context.Context, opts model.ImportBatchListOptions) ([]*model.ImportBatch, error)
	ListRows(ctx context.Context, batchID string) ([]*model.ImportRowAudit, error)
}

// ImposterWatchRepository defines the interface for imposter watch data operations.
type ImposterWatchRepository interface {
	Create(ctx context.Context, req *model.CreateImposterWatchRequest) (*model.ImposterWatch, error)
	GetByID(ctx context.Context, id string) (*model.ImposterWatch, error)
	List(ctx context.Context, opts model.ImposterWatchListOptions) ([]*model.ImposterWatch, error)
	// ListActiveByBrand returns active watches for a brand for match sweeps.
	ListActiveByBrand(ctx context.Context, brandID string) ([]*model.ImposterWatch, error)
	Update(ctx context.Context, id string, req model.UpdateImposterWatchRequest) (*model.ImposterWatch, error)
	Delete(ctx context.Context, id string) (bool, error)
	// RecordMatch increments match_count and stamps last_matched_at.
	RecordMatch(ctx context.Context, id string, at time.Time) error
}
