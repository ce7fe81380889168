package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linkpilot/linkpilot-api/config"
	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/mocks"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

type runnerFixture struct {
	jobs     *mocks.MockRankJobRepository
	keywords *mocks.MockTrackedKeywordRepository
	history  *mocks.MockRankHistoryRepository
	provider *mocks.MockRankingProvider
}

func newTestRunner(t *testing.T) (*Runner, runnerFixture) {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := runnerFixture{
		jobs:     mocks.NewMockRankJobRepository(ctrl),
		keywords: mocks.NewMockTrackedKeywordRepository(ctrl),
		history:  mocks.NewMockRankHistoryRepository(ctrl),
		provider: mocks.NewMockRankingProvider(ctrl),
	}

	ranks := service.NewRankService(service.RankServiceOptions{
		Keywords: f.keywords,
		History:  f.history,
		Provider: f.provider,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	runner, err := NewRunner(RunnerOptions{
		Jobs:   f.jobs,
		Ranks:  ranks,
		Config: config.WorkerConfig{Concurrency: 1},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return runner, f
}

// runUntilCancelled runs the runner in the background and fails the test if
// it does not stop shortly after the context is cancelled.
func runUntilCancelled(t *testing.T, runner *Runner, ctx context.Context) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after context cancellation")
	}
}

func TestNewRunner_RequiresDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockRankJobRepository(ctrl)
	ranks := service.NewRankService(service.RankServiceOptions{
		Keywords: mocks.NewMockTrackedKeywordRepository(ctrl),
		History:  mocks.NewMockRankHistoryRepository(ctrl),
	})

	_, err := NewRunner(RunnerOptions{Ranks: ranks})
	assert.Error(t, err)

	_, err = NewRunner(RunnerOptions{Jobs: jobs})
	assert.Error(t, err)

	_, err = NewRunner(RunnerOptions{Jobs: jobs, Ranks: ranks})
	assert.NoError(t, err)
}

func TestRunner_CompletesJob(t *testing.T) {
	runner, f := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	job := &model.RankFetchJob{ID: "job-1", BrandID: "brand-1", Status: model.JobStatusRunning}

	var reserved atomic.Bool
	f.jobs.EXPECT().ReserveNext(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, int) (*model.RankFetchJob, error) {
			if reserved.CompareAndSwap(false, true) {
				return job, nil
			}
			return nil, nil
		}).AnyTimes()
	f.jobs.EXPECT().Heartbeat(gomock.Any(), "job-1", gomock.Any()).Return(true, nil).AnyTimes()

	f.keywords.EXPECT().ListActiveByBrand(gomock.Any(), "brand-1").
		Return([]*model.TrackedKeyword{{ID: "kw-1", BrandID: "brand-1", Keyword: "running shoes"}}, nil)
	f.provider.EXPECT().FetchRank(gomock.Any(), gomock.Any()).
		Return(&core.KeywordRank{KeywordID: "kw-1", Position: 5}, nil)
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *model.RecordRankRequest) (*model.RankObservation, error) {
			assert.Equal(t, "kw-1", req.KeywordID)
			assert.Equal(t, 5, req.Position)
			assert.Equal(t, model.RankSourceFetched, req.Source)
			return &model.RankObservation{ID: "obs-1", KeywordID: "kw-1", Position: 5}, nil
		})

	f.jobs.EXPECT().Complete(gomock.Any(), "job-1").DoAndReturn(
		func(context.Context, string) (bool, error) {
			cancel()
			return true, nil
		})

	runUntilCancelled(t, runner, ctx)
}

func TestRunner_FailsJobOnFetchError(t *testing.T) {
	runner, f := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	job := &model.RankFetchJob{ID: "job-2", BrandID: "brand-1", Status: model.JobStatusRunning}

	var reserved atomic.Bool
	f.jobs.EXPECT().ReserveNext(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, int) (*model.RankFetchJob, error) {
			if reserved.CompareAndSwap(false, true) {
				return job, nil
			}
			return nil, nil
		}).AnyTimes()
	f.jobs.EXPECT().Heartbeat(gomock.Any(), "job-2", gomock.Any()).Return(true, nil).AnyTimes()

	f.keywords.EXPECT().ListActiveByBrand(gomock.Any(), "brand-1").
		Return(nil, errors.New("connection reset"))

	f.jobs.EXPECT().Fail(gomock.Any(), "job-2", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, errMsg string) (bool, error) {
			assert.Contains(t, errMsg, "connection reset")
			cancel()
			return true, nil
		})

	runUntilCancelled(t, runner, ctx)
}

func TestRunner_IdleQueueKeepsPolling(t *testing.T) {
	runner, f := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var polls atomic.Int32
	f.jobs.EXPECT().ReserveNext(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, int) (*model.RankFetchJob, error) {
			if polls.Add(1) >= 2 {
				cancel()
			}
			return nil, nil
		}).AnyTimes()

	runUntilCancelled(t, runner, ctx)
	assert.GreaterOrEqual(t, polls.Load(), int32(2))
}

func TestRunner_ReserveErrorDoesNotStopLoop(t *testing.T) {
	runner, f := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var polls atomic.Int32
	f.jobs.EXPECT().ReserveNext(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, int) (*model.RankFetchJob, error) {
			if polls.Add(1) >= 2 {
				cancel()
			}
			return nil, errors.New("deadlock detected")
		}).AnyTimes()

	runUntilCancelled(t, runner, ctx)
	assert.GreaterOrEqual(t, polls.Load(), int32(2))
}
