package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linkpilot/linkpilot-api/config"
	"github.com/linkpilot/linkpilot-api/internal/mocks"
)

func reaperTestConfig() config.ReaperConfig {
	return config.ReaperConfig{
		Interval:      5 * time.Minute,
		MaxAttempts:   3,
		JobMaxAge:     7 * 24 * time.Hour,
		HistoryMaxAge: 365 * 24 * time.Hour,
		AlertMaxAge:   90 * 24 * time.Hour,
		BatchSize:     1000,
	}
}

func newReaperForTest(t *testing.T, ctrl *gomock.Controller) (*ReaperService, *mocks.MockReaperRepository, *mocks.MockRankHistoryRepository, *mocks.MockRankAlertRepository) {
	t.Helper()

	jobs := mocks.NewMockReaperRepository(ctrl)
	history := mocks.NewMockRankHistoryRepository(ctrl)
	alerts := mocks.NewMockRankAlertRepository(ctrl)

	svc, err := NewReaperService(ReaperServiceOptions{
		Jobs:    jobs,
		History: history,
		Alerts:  alerts,
		Config:  reaperTestConfig(),
	})
	require.NoError(t, err)

	return svc, jobs, history, alerts
}

func TestNewReaperService_RequiresDeps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jobs := mocks.NewMockReaperRepository(ctrl)
	history := mocks.NewMockRankHistoryRepository(ctrl)
	alerts := mocks.NewMockRankAlertRepository(ctrl)

	_, err := NewReaperService(ReaperServiceOptions{History: history, Alerts: alerts})
	assert.Error(t, err)

	_, err = NewReaperService(ReaperServiceOptions{Jobs: jobs, Alerts: alerts})
	assert.Error(t, err)

	_, err = NewReaperService(ReaperServiceOptions{Jobs: jobs, History: history})
	assert.Error(t, err)

	svc, err := NewReaperService(ReaperServiceOptions{Jobs: jobs, History: history, Alerts: alerts, Config: reaperTestConfig()})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestReaperService_RunCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, jobs, history, alerts := newReaperForTest(t, ctrl)
	ctx := context.Background()

	jobs.EXPECT().RequeueExpiredLeases(ctx, gomock.Any()).Return(int64(2), nil)
	jobs.EXPECT().FailExhaustedJobs(ctx, 3).Return(int64(1), nil)
	// Batched delete loops until a batch comes back empty.
	gomock.InOrder(
		jobs.EXPECT().DeleteOldJobs(ctx, 7*24*time.Hour, 1000).Return(int64(1000), nil),
		jobs.EXPECT().DeleteOldJobs(ctx, 7*24*time.Hour, 1000).Return(int64(37), nil),
		jobs.EXPECT().DeleteOldJobs(ctx, 7*24*time.Hour, 1000).Return(int64(0), nil),
	)
	history.EXPECT().DeleteOlderThan(ctx, gomock.Any()).Return(int64(120), nil)
	alerts.EXPECT().DeleteOlderThan(ctx, gomock.Any()).Return(int64(8), nil)

	err := svc.runCleanup(ctx)
	require.NoError(t, err)
}

func TestReaperService_RunCleanup_RetentionCutoffs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, jobs, history, alerts := newReaperForTest(t, ctrl)
	ctx := context.Background()
	before := time.Now().UTC()

	jobs.EXPECT().RequeueExpiredLeases(ctx, gomock.Any()).Return(int64(0), nil)
	jobs.EXPECT().FailExhaustedJobs(ctx, 3).Return(int64(0), nil)
	jobs.EXPECT().DeleteOldJobs(ctx, gomock.Any(), gomock.Any()).Return(int64(0), nil)

	history.EXPECT().DeleteOlderThan(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, cutoff time.Time) (int64, error) {
			want := before.Add(-365 * 24 * time.Hour)
			assert.WithinDuration(t, want, cutoff, 5*time.Second)
			return 0, nil
		})
	alerts.EXPECT().DeleteOlderThan(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, cutoff time.Time) (int64, error) {
			want := before.Add(-90 * 24 * time.Hour)
			assert.WithinDuration(t, want, cutoff, 5*time.Second)
			return 0, nil
		})

	require.NoError(t, svc.runCleanup(ctx))
}

func TestReaperService_RunCleanup_StepFailureDoesNotStopOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, jobs, history, alerts := newReaperForTest(t, ctrl)
	ctx := context.Background()
	boom := errors.New("deadlock detected")

	jobs.EXPECT().RequeueExpiredLeases(ctx, gomock.Any()).Return(int64(0), boom)
	jobs.EXPECT().FailExhaustedJobs(ctx, 3).Return(int64(1), nil)
	jobs.EXPECT().DeleteOldJobs(ctx, gomock.Any(), gomock.Any()).Return(int64(0), nil)
	history.EXPECT().DeleteOlderThan(ctx, gomock.Any()).Return(int64(0), nil)
	alerts.EXPECT().DeleteOlderThan(ctx, gomock.Any()).Return(int64(0), nil)

	err := svc.runCleanup(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestReaperService_RunCleanup_AllCanceledCollapses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, jobs, history, alerts := newReaperForTest(t, ctrl)
	ctx := context.Background()

	jobs.EXPECT().RequeueExpiredLeases(ctx, gomock.Any()).Return(int64(0), context.Canceled)
	jobs.EXPECT().FailExhaustedJobs(ctx, 3).Return(int64(0), context.Canceled)
	jobs.EXPECT().DeleteOldJobs(ctx, gomock.Any(), gomock.Any()).Return(int64(0), context.Canceled)
	history.EXPECT().DeleteOlderThan(ctx, gomock.Any()).Return(int64(0), context.Canceled)
	alerts.EXPECT().DeleteOlderThan(ctx, gomock.Any()).Return(int64(0), context.Canceled)

	err := svc.runCleanup(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReaperService_Run_GracefulShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, jobs, history, alerts := newReaperForTest(t, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The initial pass still fires with the canceled context.
	jobs.EXPECT().RequeueExpiredLeases(gomock.Any(), gomock.Any()).Return(int64(0), context.Canceled).AnyTimes()
	jobs.EXPECT().FailExhaustedJobs(gomock.Any(), gomock.Any()).Return(int64(0), context.Canceled).AnyTimes()
	jobs.EXPECT().DeleteOldJobs(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), context.Canceled).AnyTimes()
	history.EXPECT().DeleteOlderThan(gomock.Any(), gomock.Any()).Return(int64(0), context.Canceled).AnyTimes()
	alerts.EXPECT().DeleteOlderThan(gomock.Any(), gomock.Any()).Return(int64(0), context.Canceled).AnyTimes()

	assert.NoError(t, svc.Run(ctx))
}
