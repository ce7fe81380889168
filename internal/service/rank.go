package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/domain/rankstats"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// statsCacheTTL bounds how stale a cached statistics view may get. New
// observations also invalidate the key eagerly.
const statsCacheTTL = 10 * time.Minute

// fetchConcurrency bounds parallel provider calls during a brand fetch.
const fetchConcurrency = 4

// RankServiceOptions groups dependencies for RankService.
type RankServiceOptions struct {
	Keywords core.TrackedKeywordRepository // Required: tracked keyword repository
	History  core.RankHistoryRepository    // Required: rank history repository
	Provider core.RankingProvider          // Optional: external ranking data vendor
	Cache    core.CacheRepository          // Optional: statistics cache
	Logger   *slog.Logger                  // Optional: structured logger
}

// RankService provides business logic for rank observations: manual
// recording, stored history reads, derived statistics, and provider
// fetches for a brand's active keywords.
type RankService struct {
	keywords core.TrackedKeywordRepository
	history  core.RankHistoryRepository
	provider core.RankingProvider
	cache    core.CacheRepository
	logger   *slog.Logger
}

// NewRankService constructs a new RankService.
func NewRankService(opts RankServiceOptions) *RankService {
	if opts.Keywords == nil {
		panic("TrackedKeywordRepository is required")
	}
	if opts.History == nil {
		panic("RankHistoryRepository is required")
	}
	return &RankService{
		keywords: opts.Keywords,
		history:  opts.History,
		provider: opts.Provider,
		cache:    opts.Cache,
		logger:   opts.Logger,
	}
}

// Record stores one rank observation. A second write for the same keyword
// and day replaces the first.
func (s *RankService) Record(ctx context.Context, req *model.RecordRankRequest) (*model.RankObservation, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	obs, err := s.history.Record(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("record rank observation: %w", mapRepoError(err))
	}

	s.invalidateStats(ctx, req.KeywordID)
	return obs, nil
}

// History returns stored observations for a keyword, oldest first.
func (s *RankService) History(ctx context.Context, opts model.RankHistoryOptions) ([]*model.RankObservation, error) {
	if opts.KeywordID == "" {
		return nil, apperrors.Validation("keyword_id is required")
	}

	observations, err := s.history.History(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("rank history: %w", err)
	}
	return observations, nil
}

// Stats derives statistics over a keyword's stored history. Results are
// cached briefly; recording a new observation invalidates the cache.
func (s *RankService) Stats(ctx context.Context, keywordID string) (*rankstats.Statistics, error) {
	if keywordID == "" {
		return nil, apperrors.Validation("keyword_id is required")
	}

	if cached := s.cachedStats(ctx, keywordID); cached != nil {
		return cached, nil
	}

	kw, err := s.keywords.GetByID(ctx, keywordID)
	if err != nil {
		return nil, fmt.Errorf("get tracked keyword: %w", mapRepoError(err))
	}

	observations, err := s.history.History(ctx, model.RankHistoryOptions{KeywordID: keywordID})
	if err != nil {
		return nil, fmt.Errorf("load history for stats: %w", err)
	}

	stats := rankstats.Compute(toStatObservations(kw, observations))
	s.cacheStats(ctx, keywordID, &stats)
	return &stats, nil
}

// FetchOutcome summarizes one provider fetch pass over a brand's keywords.
type FetchOutcome struct {
	Fetched int `json:"fetched"`
	Failed  int `json:"failed"`
}

// FetchBrand fetches current positions for every active keyword of a brand
// and records them as today's observations. Provider failures are isolated
// per keyword: one keyword failing never blocks the rest of the pass.
func (s *RankService) FetchBrand(ctx context.Context, brandID string) (*FetchOutcome, error) {
	if brandID == "" {
		return nil, apperrors.Validation("brand_id is required")
	}
	if s.provider == nil {
		return nil, apperrors.Upstream("no ranking provider configured")
	}

	keywords, err := s.keywords.ListActiveByBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("list active keywords: %w", err)
	}

	var (
		mu      sync.Mutex
		outcome FetchOutcome
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for _, kw := range keywords {
		g.Go(func() error {
			if fetchErr := s.fetchOne(gctx, kw); fetchErr != nil {
				if isContextCancellation(fetchErr) {
					return fetchErr
				}
				if s.logger != nil {
					s.logger.WarnContext(gctx, "keyword fetch failed",
						"keyword_id", kw.ID, "keyword", kw.Keyword, "error", fetchErr)
				}
				mu.Lock()
				outcome.Failed++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			outcome.Fetched++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch brand %s: %w", brandID, err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "brand rank fetch finished",
			"brand_id", brandID, "fetched", outcome.Fetched, "failed", outcome.Failed)
	}
	return &outcome, nil
}

func (s *RankService) fetchOne(ctx context.Context, kw *model.TrackedKeyword) error {
	rank, err := s.provider.FetchRank(ctx, kw)
	if err != nil {
		return fmt.Errorf("provider fetch: %w", err)
	}

	req := &model.RecordRankRequest{
		KeywordID:    kw.ID,
		Position:     rank.Position,
		RankedURL:    rank.RankedURL,
		Traffic:      rank.Traffic,
		SearchVolume: rank.SearchVolume,
		Difficulty:   rank.Difficulty,
		CPC:          rank.CPC,
		Source:       model.RankSourceFetched,
	}
	if _, err := s.history.Record(ctx, req); err != nil {
		return fmt.Errorf("record fetched rank: %w", err)
	}

	s.invalidateStats(ctx, kw.ID)
	return nil
}

func statsCacheKey(keywordID string) string {
	return "rank:stats:" + keywordID
}

// cachedStats reads a cached statistics view. Cache failures degrade to a
// recompute, never an error.
func (s *RankService) cachedStats(ctx context.Context, keywordID string) *rankstats.Statistics {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey(keywordID))
	if err != nil || raw == nil {
		return nil
	}
	var stats rankstats.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *RankService) cacheStats(ctx context.Context, keywordID string, stats *rankstats.Statistics) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey(keywordID), raw, statsCacheTTL); err != nil && s.logger != nil {
		s.logger.DebugContext(ctx, "stats cache write failed", "keyword_id", keywordID, "error", err)
	}
}

func (s *RankService) invalidateStats(ctx context.Context, keywordID string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, statsCacheKey(keywordID)); err != nil && s.logger != nil {
		s.logger.DebugContext(ctx, "stats cache invalidation failed", "keyword_id", keywordID, "error", err)
	}
}

func toStatObservations(kw *model.TrackedKeyword, observations []*model.RankObservation) []rankstats.Observation {
	series := make([]rankstats.Observation, 0, len(observations))
	for _, o := range observations {
		series = append(series, rankstats.Observation{
			TrackedID:    o.KeywordID,
			Keyword:      kw.Keyword,
			Country:      kw.Country,
			Date:         o.Day,
			Position:     o.Position,
			Traffic:      o.Traffic,
			SearchVolume: o.SearchVolume,
			Difficulty:   o.Difficulty,
			CPC:          o.CPC,
		})
	}
	return series
}
