package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkpilot/linkpilot-api/config"
	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
)

// SchedulerServiceOptions groups dependencies for SchedulerService.
type SchedulerServiceOptions struct {
	Schedules    core.RankScheduleRepository // Required: rank schedule repository
	Jobs         core.RankJobRepository      // Required: rank job repository
	Config       config.SchedulerConfig      // Required: scheduler configuration
	TimeProvider data.TimeProvider           // Optional: defaults to real time
	Logger       *slog.Logger                // Optional: structured logger
}

// SchedulerService turns due rank fetch schedules into queued jobs.
// Safe under concurrent replicas: FindDue uses FOR UPDATE SKIP LOCKED so
// two schedulers never pick up the same schedule in one tick.
type SchedulerService struct {
	schedules    core.RankScheduleRepository
	jobs         core.RankJobRepository
	config       config.SchedulerConfig
	timeProvider data.TimeProvider
	logger       *slog.Logger
}

// NewSchedulerService constructs a new SchedulerService.
func NewSchedulerService(opts SchedulerServiceOptions) *SchedulerService {
	if opts.Schedules == nil {
		panic("RankScheduleRepository is required")
	}
	if opts.Jobs == nil {
		panic("RankJobRepository is required")
	}
	if opts.TimeProvider == nil {
		opts.TimeProvider = &data.RealTimeProvider{}
	}
	return &SchedulerService{
		schedules:    opts.Schedules,
		jobs:         opts.Jobs,
		config:       opts.Config,
		timeProvider: opts.TimeProvider,
		logger:       opts.Logger,
	}
}

// Tick enqueues a rank fetch job for every due schedule and advances the
// schedule's next run. Returns the number of schedules processed.
func (s *SchedulerService) Tick(ctx context.Context) (int, error) {
	now := s.timeProvider.Now().UTC()

	due, err := s.schedules.FindDue(ctx, now, s.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("find due schedules: %w", err)
	}

	processed := 0
	for _, sched := range due {
		job, err := s.jobs.Enqueue(ctx, sched.BrandID)
		if err != nil {
			return processed, fmt.Errorf("enqueue rank job for brand %s: %w", sched.BrandID, err)
		}

		ok, err := s.schedules.MarkEnqueued(ctx, sched.ID, now)
		if err != nil {
			return processed, fmt.Errorf("mark schedule %s enqueued: %w", sched.ID, err)
		}
		if !ok {
			// Schedule deleted between FindDue and MarkEnqueued. The job
			// stays queued and runs once more.
			if s.logger != nil {
				s.logger.WarnContext(ctx, "schedule vanished during tick", "schedule_id", sched.ID)
			}
			continue
		}

		processed++
		if s.logger != nil {
			s.logger.DebugContext(ctx, "schedule enqueued",
				"schedule_id", sched.ID, "brand_id", sched.BrandID, "job_id", job.ID)
		}
	}

	return processed, nil
}

// Upsert creates or updates the fetch schedule for a brand. A zero or
// negative interval falls back to the configured default.
func (s *SchedulerService) Upsert(ctx context.Context, brandID string, intervalMinutes int) (*model.RankSchedule, error) {
	if brandID == "" {
		return nil, apperrors.Validation("brand_id is required")
	}
	if intervalMinutes <= 0 {
		intervalMinutes = s.config.DefaultIntervalMinutes
	}

	sched, err := s.schedules.Upsert(ctx, brandID, intervalMinutes)
	if err != nil {
		return nil, fmt.Errorf("upsert rank schedule: %w", mapRepoError(err))
	}
	return sched, nil
}

// SetEnabled pauses or resumes a schedule.
func (s *SchedulerService) SetEnabled(ctx context.Context, id string, enabled bool) (bool, error) {
	updated, err := s.schedules.SetEnabled(ctx, id, enabled)
	if err != nil {
		return false, fmt.Errorf("set schedule enabled: %w", mapRepoError(err))
	}
	return updated, nil
}

// Delete removes a schedule. Queued jobs already created from it still run.
func (s *SchedulerService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.schedules.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete rank schedule: %w", mapRepoError(err))
	}
	return deleted, nil
}
