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
	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
	"github.com/linkpilot/linkpilot-api/internal/mocks"
)

func schedulerTestConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		Interval:               30 * time.Second,
		BatchSize:              25,
		DefaultIntervalMinutes: 1440,
	}
}

func TestNewSchedulerService_PanicsWithoutDeps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assert.Panics(t, func() {
		NewSchedulerService(SchedulerServiceOptions{Jobs: mocks.NewMockRankJobRepository(ctrl)})
	})
	assert.Panics(t, func() {
		NewSchedulerService(SchedulerServiceOptions{Schedules: mocks.NewMockRankScheduleRepository(ctrl)})
	})
}

func TestSchedulerService_Tick_EnqueuesDueSchedules(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	schedules := mocks.NewMockRankScheduleRepository(ctrl)
	jobs := mocks.NewMockRankJobRepository(ctrl)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	svc := NewSchedulerService(SchedulerServiceOptions{
		Schedules:    schedules,
		Jobs:         jobs,
		Config:       schedulerTestConfig(),
		TimeProvider: data.NewFixedTimeProvider(now),
	})

	ctx := context.Background()
	due := []*model.RankSchedule{
		{ID: "sched-1", BrandID: "brand-1"},
		{ID: "sched-2", BrandID: "brand-2"},
	}

	schedules.EXPECT().FindDue(ctx, now, 25).Return(due, nil)
	jobs.EXPECT().Enqueue(ctx, "brand-1").Return(&model.RankFetchJob{ID: "job-1"}, nil)
	schedules.EXPECT().MarkEnqueued(ctx, "sched-1", now).Return(true, nil)
	jobs.EXPECT().Enqueue(ctx, "brand-2").Return(&model.RankFetchJob{ID: "job-2"}, nil)
	schedules.EXPECT().MarkEnqueued(ctx, "sched-2", now).Return(true, nil)

	processed, err := svc.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
}

func TestSchedulerService_Tick_NothingDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	schedules := mocks.NewMockRankScheduleRepository(ctrl)
	jobs := mocks.NewMockRankJobRepository(ctrl)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	svc := NewSchedulerService(SchedulerServiceOptions{
		Schedules:    schedules,
		Jobs:         jobs,
		Config:       schedulerTestConfig(),
		TimeProvider: data.NewFixedTimeProvider(now),
	})

	ctx := context.Background()
	schedules.EXPECT().FindDue(ctx, now, 25).Return(nil, nil)

	processed, err := svc.Tick(ctx)
	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestSchedulerService_Tick_ScheduleVanished(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	schedules := mocks.NewMockRankScheduleRepository(ctrl)
	jobs := mocks.NewMockRankJobRepository(ctrl)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	svc := NewSchedulerService(SchedulerServiceOptions{
		Schedules:    schedules,
		Jobs:         jobs,
		Config:       schedulerTestConfig(),
		TimeProvider: data.NewFixedTimeProvider(now),
	})

	ctx := context.Background()
	due := []*model.RankSchedule{
		{ID: "sched-1", BrandID: "brand-1"},
		{ID: "sched-2", BrandID: "brand-2"},
	}

	schedules.EXPECT().FindDue(ctx, now, 25).Return(due, nil)
	jobs.EXPECT().Enqueue(ctx, "brand-1").Return(&model.RankFetchJob{ID: "job-1"}, nil)
	// Deleted between FindDue and MarkEnqueued; the tick keeps going.
	schedules.EXPECT().MarkEnqueued(ctx, "sched-1", now).Return(false, nil)
	jobs.EXPECT().Enqueue(ctx, "brand-2").Return(&model.RankFetchJob{ID: "job-2"}, nil)
	schedules.EXPECT().MarkEnqueued(ctx, "sched-2", now).Return(true, nil)

	processed, err := svc.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
}

func TestSchedulerService_Tick_EnqueueErrorStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	schedules := mocks.NewMockRankScheduleRepository(ctrl)
	jobs := mocks.NewMockRankJobRepository(ctrl)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	svc := NewSchedulerService(SchedulerServiceOptions{
		Schedules:    schedules,
		Jobs:         jobs,
		Config:       schedulerTestConfig(),
		TimeProvider: data.NewFixedTimeProvider(now),
	})

	ctx := context.Background()
	boom := errors.New("insert failed")
	schedules.EXPECT().FindDue(ctx, now, 25).Return([]*model.RankSchedule{
		{ID: "sched-1", BrandID: "brand-1"},
		{ID: "sched-2", BrandID: "brand-2"},
	}, nil)
	jobs.EXPECT().Enqueue(ctx, "brand-1").Return(nil, boom)

	processed, err := svc.Tick(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, processed)
}

func TestSchedulerService_Upsert_DefaultsInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	schedules := mocks.NewMockRankScheduleRepository(ctrl)
	jobs := mocks.NewMockRankJobRepository(ctrl)
	svc := NewSchedulerService(SchedulerServiceOptions{
		Schedules: schedules,
		Jobs:      jobs,
		Config:    schedulerTestConfig(),
	})

	ctx := context.Background()
	want := &model.RankSchedule{ID: "sched-1", BrandID: "brand-1", IntervalMinutes: 1440}
	schedules.EXPECT().Upsert(ctx, "brand-1", 1440).Return(want, nil)

	sched, err := svc.Upsert(ctx, "brand-1", 0)
	require.NoError(t, err)
	assert.Equal(t, want, sched)
}

func TestSchedulerService_Upsert_RequiresBrand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewSchedulerService(SchedulerServiceOptions{
		Schedules: mocks.NewMockRankScheduleRepository(ctrl),
		Jobs:      mocks.NewMockRankJobRepository(ctrl),
		Config:    schedulerTestConfig(),
	})

	_, err := svc.Upsert(context.Background(), "", 60)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSchedulerService_SetEnabled_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	schedules := mocks.NewMockRankScheduleRepository(ctrl)
	svc := NewSchedulerService(SchedulerServiceOptions{
		Schedules: schedules,
		Jobs:      mocks.NewMockRankJobRepository(ctrl),
		Config:    schedulerTestConfig(),
	})

	ctx := context.Background()
	schedules.EXPECT().SetEnabled(ctx, "missing", false).Return(false, data.ErrScheduleNotFound)

	updated, err := svc.SetEnabled(ctx, "missing", false)
	require.Error(t, err)
	assert.False(t, updated)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSchedulerService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	schedules := mocks.NewMockRankScheduleRepository(ctrl)
	svc := NewSchedulerService(SchedulerServiceOptions{
		Schedules: schedules,
		Jobs:      mocks.NewMockRankJobRepository(ctrl),
		Config:    schedulerTestConfig(),
	})

	ctx := context.Background()
	schedules.EXPECT().Delete(ctx, "sched-1").Return(true, nil)

	deleted, err := svc.Delete(ctx, "sched-1")
	require.NoError(t, err)
	assert.True(t, deleted)
}
