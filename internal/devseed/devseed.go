// Package devseed populates a development database with a small but
// realistic portfolio: brands, backlinks, prospects, tracked keywords with
// fetch schedules, imposter watches, and a week of rank history. Seeding is
// idempotent; records that already exist are skipped, not errors.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/linkpilot/linkpilot-api/config"
	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB        *sql.DB
	brands    *service.BrandService
	backlinks *service.BacklinkService
	prospects *service.ProspectService
	keywords  *service.KeywordService
	ranks     *service.RankService
	reconcile *service.ReconcileService
	imposters *service.ImposterService
	scheduler *service.SchedulerService
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	brandRepo := data.NewBrandRepo(db)
	backlinkRepo := data.NewBacklinkRepo(db)
	prospectRepo := data.NewProspectRepo(db)
	keywordRepo := data.NewTrackedKeywordRepo(db)
	historyRepo := data.NewRankHistoryRepo(db)
	linkDomainRepo := data.NewLinkDomainRepo(db)

	return Services{
		DB:        db,
		brands:    service.NewBrandService(service.BrandServiceOptions{Repo: brandRepo}),
		backlinks: service.NewBacklinkService(service.BacklinkServiceOptions{Repo: backlinkRepo}),
		prospects: service.NewProspectService(service.ProspectServiceOptions{Repo: prospectRepo}),
		keywords:  service.NewKeywordService(service.KeywordServiceOptions{Repo: keywordRepo}),
		ranks: service.NewRankService(service.RankServiceOptions{
			Keywords: keywordRepo,
			History:  historyRepo,
		}),
		reconcile: service.NewReconcileService(service.ReconcileServiceOptions{
			Backlinks:   backlinkRepo,
			Prospects:   prospectRepo,
			LinkDomains: linkDomainRepo,
		}),
		imposters: service.NewImposterService(service.ImposterServiceOptions{
			Watches:     data.NewImposterWatchRepo(db),
			LinkDomains: linkDomainRepo,
		}),
		scheduler: service.NewSchedulerService(service.SchedulerServiceOptions{
			Schedules: data.NewRankScheduleRepo(db),
			Jobs:      data.NewRankJobRepo(db),
			Config:    config.SchedulerConfig{DefaultIntervalMinutes: 1440},
		}),
	}
}

// seedBrand describes one brand's full seed data set.
type seedBrand struct {
	brand     model.CreateBrandRequest
	backlinks []model.CreateBacklinkRequest
	prospects []model.CreateProspectRequest
	keywords  []seedKeyword
	watches   []model.CreateImposterWatchRequest
	// scheduleMinutes enables a daily-style fetch schedule when > 0.
	scheduleMinutes int
}

// seedKeyword is a tracked keyword plus a synthetic position walk used to
// generate a week of history.
type seedKeyword struct {
	keyword   model.CreateTrackedKeywordRequest
	positions []int // oldest first, one observation per day
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := 0
	for _, sb := range defaultBrands() {
		brand, err := ensureBrand(ctx, svcs, sb.brand, logger)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed brand", "name", sb.brand.Name, "error", err)
			}
			failures++
			continue
		}

		failures += seedBacklinks(ctx, svcs, brand.ID, sb.backlinks, logger)
		failures += seedProspects(ctx, svcs, brand.ID, sb.prospects, logger)
		failures += seedKeywords(ctx, svcs, brand.ID, sb.keywords, logger)
		failures += seedWatches(ctx, svcs, brand.ID, sb.watches, logger)

		if sb.scheduleMinutes > 0 {
			if _, err := svcs.scheduler.Upsert(ctx, brand.ID, sb.scheduleMinutes); err != nil {
				if logger != nil {
					logger.ErrorContext(ctx, "failed to seed fetch schedule", "brand", brand.Name, "error", err)
				}
				failures++
			}
		}

		// Fold the seeded links into the reconciled domain inventory so
		// imposter sweeps and domain listings have data immediately.
		if _, err := svcs.reconcile.Reconcile(ctx, brand.ID); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to reconcile seeded brand", "brand", brand.Name, "error", err)
			}
			failures++
		}

		if logger != nil {
			logger.InfoContext(ctx, "seeded brand", "name", brand.Name, "id", brand.ID)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

// ensureBrand creates the brand or looks it up by name when it already exists.
func ensureBrand(ctx context.Context, svcs Services, req model.CreateBrandRequest, logger *slog.Logger) (*model.Brand, error) {
	brand, err := svcs.brands.Create(ctx, &req)
	if err == nil {
		return brand, nil
	}
	if apperrors.GetCode(err) != apperrors.ErrCodeConflict {
		return nil, err
	}

	if logger != nil {
		logger.InfoContext(ctx, "brand already exists", "name", req.Name)
	}
	existing, listErr := svcs.brands.List(ctx, model.BrandListOptions{Name: &req.Name})
	if listErr != nil {
		return nil, listErr
	}
	for _, b := range existing {
		if b.Name == req.Name {
			return b, nil
		}
	}
	return nil, fmt.Errorf("brand %q exists but was not found by search", req.Name)
}

func seedBacklinks(ctx context.Context, svcs Services, brandID string, links []model.CreateBacklinkRequest, logger *slog.Logger) int {
	failures := 0
	for _, req := range links {
		req.BrandID = brandID
		if _, err := svcs.backlinks.Create(ctx, &req); err != nil {
			if apperrors.GetCode(err) == apperrors.ErrCodeConflict {
				continue
			}
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed backlink", "url", req.URL, "error", err)
			}
			failures++
		}
	}
	return failures
}

func seedProspects(ctx context.Context, svcs Services, brandID string, prospects []model.CreateProspectRequest, logger *slog.Logger) int {
	failures := 0
	for _, req := range prospects {
		req.BrandID = brandID
		if _, err := svcs.prospects.Create(ctx, &req); err != nil {
			if apperrors.GetCode(err) == apperrors.ErrCodeConflict {
				continue
			}
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed prospect", "url", req.URL, "error", err)
			}
			failures++
		}
	}
	return failures
}

func seedKeywords(ctx context.Context, svcs Services, brandID string, keywords []seedKeyword, logger *slog.Logger) int {
	failures := 0
	for _, sk := range keywords {
		req := sk.keyword
		req.BrandID = brandID
		kw, err := svcs.keywords.Create(ctx, &req)
		if err != nil {
			if apperrors.GetCode(err) == apperrors.ErrCodeConflict {
				// History for existing keywords was seeded on a previous run.
				continue
			}
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed keyword", "keyword", req.Keyword, "error", err)
			}
			failures++
			continue
		}

		failures += seedHistory(ctx, svcs, kw.ID, sk.positions, logger)
	}
	return failures
}

// seedHistory records one observation per day ending today, oldest first.
func seedHistory(ctx context.Context, svcs Services, keywordID string, positions []int, logger *slog.Logger) int {
	failures := 0
	for i, pos := range positions {
		day := time.Now().UTC().AddDate(0, 0, i-len(positions)+1)
		req := &model.RecordRankRequest{
			KeywordID: keywordID,
			Position:  pos,
			Day:       &day,
			Source:    model.RankSourceManual,
		}
		if _, err := svcs.ranks.Record(ctx, req); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed rank observation", "keyword_id", keywordID, "error", err)
			}
			failures++
		}
	}
	return failures
}

func seedWatches(ctx context.Context, svcs Services, brandID string, watches []model.CreateImposterWatchRequest, logger *slog.Logger) int {
	failures := 0
	for _, req := range watches {
		req.BrandID = brandID
		if _, err := svcs.imposters.Create(ctx, &req); err != nil {
			if apperrors.GetCode(err) == apperrors.ErrCodeConflict {
				continue
			}
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed imposter watch", "pattern", req.Pattern, "error", err)
			}
			failures++
		}
	}
	return failures
}

func intPtr(v int) *int { return &v }

func defaultBrands() []seedBrand {
	return []seedBrand{
		{
			brand: model.CreateBrandRequest{
				Name:    "Acme Running",
				SiteURL: "https://www.acmerunning.com",
				Country: "us",
			},
			backlinks: []model.CreateBacklinkRequest{
				{
					URL:           "https://runnersdigest.example.com/reviews/acme-cloudstride",
					AnchorText:    "Acme Cloudstride review",
					DomainRating:  intPtr(72),
					DomainTraffic: intPtr(340000),
				},
				{
					URL:          "https://trailgear.example.org/best-trail-shoes-2025",
					AnchorText:   "best trail shoes",
					DomainRating: intPtr(58),
				},
				{
					URL:        "https://forum.example.net/t/marathon-shoe-thread",
					AnchorText: "acmerunning.com",
					Nofollow:   true,
				},
			},
			prospects: []model.CreateProspectRequest{
				{
					URL:          "https://stridelab.example.com/partners",
					Status:       model.ProspectStatusContacted,
					DomainRating: intPtr(64),
				},
				{
					URL:    "https://runnersdigest.example.com/advertise",
					Status: model.ProspectStatusNotContacted,
				},
			},
			keywords: []seedKeyword{
				{
					keyword:   model.CreateTrackedKeywordRequest{Keyword: "running shoes", Country: "us"},
					positions: []int{14, 13, 13, 11, 9, 9, 8},
				},
				{
					keyword:   model.CreateTrackedKeywordRequest{Keyword: "trail running shoes", Country: "us"},
					positions: []int{6, 6, 5, 7, 6, 5, 4},
				},
				{
					keyword:   model.CreateTrackedKeywordRequest{Keyword: "marathon training plan", Country: "us"},
					positions: []int{22, 25, 21, 18, 30, 17, 16},
				},
			},
			watches: []model.CreateImposterWatchRequest{
				{Pattern: "acme-running.com", PatternType: "exact", Description: "Hyphenated lookalike"},
				{Pattern: "acmerunning.*", PatternType: "wildcard", Description: "TLD squatting"},
			},
			scheduleMinutes: 1440,
		},
		{
			brand: model.CreateBrandRequest{
				Name:    "Nordic Sleep Co",
				SiteURL: "https://nordicsleep.example.com",
				Country: "de",
			},
			backlinks: []model.CreateBacklinkRequest{
				{
					URL:          "https://schlafguide.example.de/matratzen-test",
					AnchorText:   "Nordic Sleep Matratze",
					DomainRating: intPtr(49),
				},
			},
			prospects: []model.CreateProspectRequest{
				{
					URL:    "https://wohnblog.example.de/kooperationen",
					Status: model.ProspectStatusNotContacted,
				},
			},
			keywords: []seedKeyword{
				{
					keyword:   model.CreateTrackedKeywordRequest{Keyword: "matratze kaufen", Country: "de"},
					positions: []int{8, 8, 7, 7, 8, 6, 6},
				},
			},
			scheduleMinutes: 1440,
		},
	}
}
