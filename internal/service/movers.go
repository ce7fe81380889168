package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/domain/rankstats"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
	"github.com/linkpilot/linkpilot-api/internal/observability/notify"
)

// MoversServiceOptions groups dependencies for MoversService.
type MoversServiceOptions struct {
	Brands   core.BrandRepository          // Required: brand repository
	Keywords core.TrackedKeywordRepository // Required: tracked keyword repository
	History  core.RankHistoryRepository    // Required: rank history repository
	Alerts   core.RankAlertRepository      // Required: rank alert repository
	Notifier notify.Sink                   // Optional: movers notification sink
	Logger   *slog.Logger                  // Optional: structured logger
}

// MoversService diffs a brand's two most recent daily rank snapshots,
// persists significant movers as alerts, and fans notifications out to the
// configured sink.
type MoversService struct {
	brands   core.BrandRepository
	keywords core.TrackedKeywordRepository
	history  core.RankHistoryRepository
	alerts   core.RankAlertRepository
	notifier notify.Sink
	logger   *slog.Logger
}

// NewMoversService constructs a new MoversService.
func NewMoversService(opts MoversServiceOptions) *MoversService {
	if opts.Brands == nil {
		panic("BrandRepository is required")
	}
	if opts.Keywords == nil {
		panic("TrackedKeywordRepository is required")
	}
	if opts.History == nil {
		panic("RankHistoryRepository is required")
	}
	if opts.Alerts == nil {
		panic("RankAlertRepository is required")
	}
	return &MoversService{
		brands:   opts.Brands,
		keywords: opts.Keywords,
		history:  opts.History,
		alerts:   opts.Alerts,
		notifier: opts.Notifier,
		logger:   opts.Logger,
	}
}

// Movers builds the day-over-day movement report for a brand without
// persisting anything. With fewer than two days on record the report is
// empty, not an error.
func (s *MoversService) Movers(ctx context.Context, brandID string) (*model.MoversResult, error) {
	if brandID == "" {
		return nil, apperrors.Validation("brand_id is required")
	}

	today, yesterday, compared, err := s.loadSnapshots(ctx, brandID)
	if err != nil {
		return nil, err
	}

	result := &model.MoversResult{BrandID: brandID, Compared: compared}
	if len(today) > 0 {
		result.Today = dateOnly(today[0].Date)
	}

	changes := rankstats.DetectChanges(today, yesterday)
	gainers, losers := rankstats.TopMovers(changes, rankstats.DefaultTopN)
	result.Gainers = toRankMoves(gainers)
	result.Losers = toRankMoves(losers)
	result.Significant = toRankMoves(rankstats.SignificantMovers(changes))

	return result, nil
}

// DetectAndAlert runs movers detection for a brand, persists every
// significant mover as an alert, and notifies the sink when any new alert
// row landed. Re-running for the same day is idempotent: alert rows are
// keyed by (keyword, day) and duplicates are dropped, so the sink only
// fires on the first pass that found them.
func (s *MoversService) DetectAndAlert(ctx context.Context, brandID string) (*model.MoversResult, error) {
	result, err := s.Movers(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if len(result.Significant) == 0 {
		return result, nil
	}

	alerts := make([]*model.RankAlert, 0, len(result.Significant))
	for _, move := range result.Significant {
		alerts = append(alerts, &model.RankAlert{
			BrandID:          brandID,
			KeywordID:        move.KeywordID,
			Keyword:          move.Keyword,
			Country:          move.Country,
			PreviousPosition: move.PreviousPosition,
			CurrentPosition:  move.CurrentPosition,
			Change:           move.Change,
			DetectedOn:       result.Today,
		})
	}

	inserted, err := s.alerts.CreateBatch(ctx, alerts)
	if err != nil {
		return nil, fmt.Errorf("persist rank alerts: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "significant movers detected",
			"brand_id", brandID, "significant", len(result.Significant), "new_alerts", inserted)
	}

	if inserted > 0 {
		s.notify(ctx, brandID, result)
	}
	return result, nil
}

// ListAlerts returns persisted rank alerts, newest first.
func (s *MoversService) ListAlerts(ctx context.Context, opts model.RankAlertListOptions) ([]*model.RankAlert, error) {
	p := normalizePagination(opts.Limit, opts.Offset)
	opts.Limit = p.Limit
	opts.Offset = p.Offset

	alerts, err := s.alerts.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list rank alerts: %w", err)
	}
	return alerts, nil
}

// loadSnapshots loads the two most recent daily snapshots for a brand and
// annotates them with keyword metadata. Compared counts the keywords
// ranked on both sides, zero-delta entries included.
func (s *MoversService) loadSnapshots(ctx context.Context, brandID string) (today, yesterday []rankstats.Observation, compared int, err error) {
	observations, err := s.history.LatestTwoDays(ctx, brandID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("load latest snapshots: %w", err)
	}
	if len(observations) == 0 {
		return nil, nil, 0, nil
	}

	meta, err := s.keywordMeta(ctx, brandID)
	if err != nil {
		return nil, nil, 0, err
	}

	// Rows come back newest day first; the first distinct day is "today".
	todayDay := dateOnly(observations[0].Day)
	prevRanked := make(map[string]struct{})
	for _, o := range observations {
		kw, ok := meta[o.KeywordID]
		if !ok {
			continue
		}
		obs := rankstats.Observation{
			TrackedID:    o.KeywordID,
			Keyword:      kw.Keyword,
			Country:      kw.Country,
			Date:         o.Day,
			Position:     o.Position,
			Traffic:      o.Traffic,
			SearchVolume: o.SearchVolume,
		}
		if dateOnly(o.Day).Equal(todayDay) {
			today = append(today, obs)
		} else {
			yesterday = append(yesterday, obs)
			if o.Position > 0 {
				prevRanked[o.KeywordID] = struct{}{}
			}
		}
	}

	for _, o := range today {
		if o.Position <= 0 {
			continue
		}
		if _, ok := prevRanked[o.TrackedID]; ok {
			compared++
		}
	}
	return today, yesterday, compared, nil
}

func (s *MoversService) keywordMeta(ctx context.Context, brandID string) (map[string]*model.TrackedKeyword, error) {
	keywords, err := s.keywords.List(ctx, model.TrackedKeywordListOptions{
		BrandID: &brandID,
		Limit:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("load keywords for movers: %w", err)
	}
	meta := make(map[string]*model.TrackedKeyword, len(keywords))
	for _, kw := range keywords {
		meta[kw.ID] = kw
	}
	return meta, nil
}

// notify sends the movers payload to the sink. Delivery failures are
// logged, never propagated: the alerts are already persisted.
func (s *MoversService) notify(ctx context.Context, brandID string, result *model.MoversResult) {
	if s.notifier == nil {
		return
	}

	payload := notify.MoversPayload{
		BrandID:          brandID,
		DetectedOn:       result.Today,
		Severity:         notify.SeverityWarning,
		SignificantCount: len(result.Significant),
	}
	if brand, err := s.brands.GetByID(ctx, brandID); err == nil {
		payload.BrandName = brand.Name
	}
	for _, move := range significantByDirection(result.Significant, true) {
		payload.Gainers = append(payload.Gainers, toMoveLine(move))
	}
	for _, move := range significantByDirection(result.Significant, false) {
		payload.Losers = append(payload.Losers, toMoveLine(move))
	}

	if err := s.notifier.SendMovers(ctx, payload); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "movers notification failed", "brand_id", brandID, "error", err)
	}
}

func significantByDirection(moves []model.RankMove, gainers bool) []model.RankMove {
	out := make([]model.RankMove, 0, len(moves))
	for _, m := range moves {
		if gainers == (m.Change > 0) {
			out = append(out, m)
		}
	}
	return out
}

func toMoveLine(m model.RankMove) notify.MoveLine {
	return notify.MoveLine{
		Keyword:          m.Keyword,
		Country:          m.Country,
		PreviousPosition: m.PreviousPosition,
		CurrentPosition:  m.CurrentPosition,
		Change:           m.Change,
	}
}

func toRankMoves(changes []rankstats.Change) []model.RankMove {
	moves := make([]model.RankMove, 0, len(changes))
	for _, c := range changes {
		moves = append(moves, model.RankMove{
			KeywordID:        c.TrackedID,
			Keyword:          c.Keyword,
			Country:          c.Country,
			PreviousPosition: c.PreviousPosition,
			CurrentPosition:  c.CurrentPosition,
			Change:           c.Change,
		})
	}
	return moves
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
