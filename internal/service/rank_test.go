package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/domain/rankstats"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
	"github.com/linkpilot/linkpilot-api/internal/mocks"
)

func TestNewRankService_PanicsWithoutDeps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assert.Panics(t, func() {
		NewRankService(RankServiceOptions{History: mocks.NewMockRankHistoryRepository(ctrl)})
	})
	assert.Panics(t, func() {
		NewRankService(RankServiceOptions{Keywords: mocks.NewMockTrackedKeywordRepository(ctrl)})
	})
}

func TestRankService_Record_InvalidatesCachedStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	keywords := mocks.NewMockTrackedKeywordRepository(ctrl)
	history := mocks.NewMockRankHistoryRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	svc := NewRankService(RankServiceOptions{Keywords: keywords, History: history, Cache: cache})

	ctx := context.Background()
	req := &model.RecordRankRequest{KeywordID: " kw-1 ", Position: 7}
	want := &model.RankObservation{ID: "obs-1", KeywordID: "kw-1", Position: 7, Source: model.RankSourceManual}

	history.EXPECT().Record(ctx, req).DoAndReturn(
		func(_ context.Context, got *model.RecordRankRequest) (*model.RankObservation, error) {
			assert.Equal(t, "kw-1", got.KeywordID)
			assert.Equal(t, model.RankSourceManual, got.Source)
			return want, nil
		})
	cache.EXPECT().Delete(ctx, "rank:stats:kw-1").Return(true, nil)

	obs, err := svc.Record(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, want, obs)
}

func TestRankService_Record_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewRankService(RankServiceOptions{
		Keywords: mocks.NewMockTrackedKeywordRepository(ctrl),
		History:  mocks.NewMockRankHistoryRepository(ctrl),
	})

	_, err := svc.Record(context.Background(), &model.RecordRankRequest{KeywordID: "kw-1", Position: -3})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRankService_History_RequiresKeywordID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewRankService(RankServiceOptions{
		Keywords: mocks.NewMockTrackedKeywordRepository(ctrl),
		History:  mocks.NewMockRankHistoryRepository(ctrl),
	})

	_, err := svc.History(context.Background(), model.RankHistoryOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRankService_Stats_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	keywords := mocks.NewMockTrackedKeywordRepository(ctrl)
	history := mocks.NewMockRankHistoryRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	svc := NewRankService(RankServiceOptions{Keywords: keywords, History: history, Cache: cache})

	ctx := context.Background()
	cached := rankstats.Statistics{HasData: true, Count: 12, Trend: rankstats.TrendStable, DaysTracked: 12}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	cache.EXPECT().Get(ctx, "rank:stats:kw-1").Return(raw, nil)

	stats, err := svc.Stats(ctx, "kw-1")
	require.NoError(t, err)
	assert.Equal(t, &cached, stats)
}

func TestRankService_Stats_CacheMissComputesAndStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	keywords := mocks.NewMockTrackedKeywordRepository(ctrl)
	history := mocks.NewMockRankHistoryRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	svc := NewRankService(RankServiceOptions{Keywords: keywords, History: history, Cache: cache})

	ctx := context.Background()
	day1 := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	cache.EXPECT().Get(ctx, "rank:stats:kw-1").Return(nil, nil)
	keywords.EXPECT().GetByID(ctx, "kw-1").
		Return(&model.TrackedKeyword{ID: "kw-1", Keyword: "running shoes", Country: "us"}, nil)
	history.EXPECT().History(ctx, model.RankHistoryOptions{KeywordID: "kw-1"}).
		Return([]*model.RankObservation{
			{KeywordID: "kw-1", Day: day1, Position: 8},
			{KeywordID: "kw-1", Day: day2, Position: 5},
		}, nil)
	cache.EXPECT().Set(ctx, "rank:stats:kw-1", gomock.Any(), statsCacheTTL).Return(nil)

	stats, err := svc.Stats(ctx, "kw-1")
	require.NoError(t, err)
	assert.True(t, stats.HasData)
	assert.Equal(t, 2, stats.Count)
	require.NotNil(t, stats.CurrentPosition)
	assert.Equal(t, 5, *stats.CurrentPosition)
	require.NotNil(t, stats.PreviousPosition)
	assert.Equal(t, 8, *stats.PreviousPosition)
	require.NotNil(t, stats.PositionChange)
	assert.Equal(t, 3, *stats.PositionChange)
	require.NotNil(t, stats.BestPosition)
	assert.Equal(t, 5, *stats.BestPosition)
	require.NotNil(t, stats.WorstPosition)
	assert.Equal(t, 8, *stats.WorstPosition)
}

func TestRankService_Stats_CacheFailureDegradesToCompute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	keywords := mocks.NewMockTrackedKeywordRepository(ctrl)
	history := mocks.NewMockRankHistoryRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	svc := NewRankService(RankServiceOptions{Keywords: keywords, History: history, Cache: cache})

	ctx := context.Background()
	cache.EXPECT().Get(ctx, "rank:stats:kw-1").Return(nil, errors.New("redis down"))
	keywords.EXPECT().GetByID(ctx, "kw-1").Return(&model.TrackedKeyword{ID: "kw-1"}, nil)
	history.EXPECT().History(ctx, model.RankHistoryOptions{KeywordID: "kw-1"}).
		Return([]*model.RankObservation{}, nil)
	cache.EXPECT().Set(ctx, "rank:stats:kw-1", gomock.Any(), statsCacheTTL).Return(errors.New("redis down"))

	stats, err := svc.Stats(ctx, "kw-1")
	require.NoError(t, err)
	assert.False(t, stats.HasData)
}

func TestRankService_Stats_KeywordNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	keywords := mocks.NewMockTrackedKeywordRepository(ctrl)
	history := mocks.NewMockRankHistoryRepository(ctrl)
	svc := NewRankService(RankServiceOptions{Keywords: keywords, History: history})

	ctx := context.Background()
	keywords.EXPECT().GetByID(ctx, "missing").Return(nil, data.ErrKeywordNotFound)

	stats, err := svc.Stats(ctx, "missing")
	require.Error(t, err)
	assert.Nil(t, stats)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRankService_FetchBrand_NoProviderConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewRankService(RankServiceOptions{
		Keywords: mocks.NewMockTrackedKeywordRepository(ctrl),
		History:  mocks.NewMockRankHistoryRepository(ctrl),
	})

	_, err := svc.FetchBrand(context.Background(), "brand-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestRankService_FetchBrand_IsolatesKeywordFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	keywords := mocks.NewMockTrackedKeywordRepository(ctrl)
	history := mocks.NewMockRankHistoryRepository(ctrl)
	provider := mocks.NewMockRankingProvider(ctrl)
	svc := NewRankService(RankServiceOptions{Keywords: keywords, History: history, Provider: provider})

	ctx := context.Background()
	kw1 := &model.TrackedKeyword{ID: "kw-1", BrandID: "brand-1", Keyword: "running shoes"}
	kw2 := &model.TrackedKeyword{ID: "kw-2", BrandID: "brand-1", Keyword: "trail shoes"}

	keywords.EXPECT().ListActiveByBrand(ctx, "brand-1").Return([]*model.TrackedKeyword{kw1, kw2}, nil)
	provider.EXPECT().FetchRank(gomock.Any(), kw1).Return(&core.KeywordRank{KeywordID: "kw-1", Position: 4}, nil)
	provider.EXPECT().FetchRank(gomock.Any(), kw2).Return(nil, errors.New("quota exceeded"))
	history.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *model.RecordRankRequest) (*model.RankObservation, error) {
			assert.Equal(t, "kw-1", req.KeywordID)
			assert.Equal(t, 4, req.Position)
			assert.Equal(t, model.RankSourceFetched, req.Source)
			return &model.RankObservation{ID: "obs-1"}, nil
		})

	outcome, err := svc.FetchBrand(ctx, "brand-1")
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Fetched)
	assert.Equal(t, 1, outcome.Failed)
}

func TestRankService_FetchBrand_RequiresBrandID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewRankService(RankServiceOptions{
		Keywords: mocks.NewMockTrackedKeywordRepository(ctrl),
		History:  mocks.NewMockRankHistoryRepository(ctrl),
		Provider: mocks.NewMockRankingProvider(ctrl),
	})

	_, err := svc.FetchBrand(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
