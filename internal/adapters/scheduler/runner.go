// Package scheduler provides the adapter that runs the rank fetch scheduler loop.
package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/linkpilot/linkpilot-api/config"
	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/data"
	obserrors "github.com/linkpilot/linkpilot-api/internal/observability/errors"
	"github.com/linkpilot/linkpilot-api/internal/observability/metrics"
	"github.com/linkpilot/linkpilot-api/internal/observability/statsd"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// Runner drives the scheduler service on a fixed tick interval. Each tick
// turns due schedules into queued rank fetch jobs.
type Runner struct {
	scheduler *service.SchedulerService
	interval  time.Duration
	logger    *slog.Logger
	metrics   statsd.Sink
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB     *sql.DB
	Config config.SchedulerConfig
	Logger *slog.Logger

	// Optional dependency injections for testing/decoupling
	Schedules core.RankScheduleRepository
	Jobs      core.RankJobRepository
	Metrics   statsd.Sink
}

// NewRunner creates a new scheduler runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if err := validateRunnerOptions(&opts); err != nil {
		return nil, err
	}
	opts.Config.Sanitize()

	scheduler := service.NewSchedulerService(wireRunnerDependencies(opts))

	return &Runner{
		scheduler: scheduler,
		interval:  opts.Config.Interval,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}, nil
}

// validateRunnerOptions validates and sets defaults for RunnerOptions.
func validateRunnerOptions(opts *RunnerOptions) error {
	if opts.DB == nil && (opts.Schedules == nil || opts.Jobs == nil) {
		return errors.New("database connection is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return nil
}

// wireRunnerDependencies wires up all dependencies for the scheduler service.
func wireRunnerDependencies(opts RunnerOptions) service.SchedulerServiceOptions {
	var schedules core.RankScheduleRepository
	if opts.Schedules != nil {
		schedules = opts.Schedules
	} else {
		schedules = data.NewRankScheduleRepo(opts.DB)
	}

	var jobs core.RankJobRepository
	if opts.Jobs != nil {
		jobs = opts.Jobs
	} else {
		jobs = data.NewRankJobRepo(opts.DB)
	}

	return service.SchedulerServiceOptions{
		Schedules: schedules,
		Jobs:      jobs,
		Config:    opts.Config,
		Logger:    opts.Logger,
	}
}

// Run starts the scheduler loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting scheduler runner", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("scheduler runner stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			start := time.Now()
			processed, err := r.scheduler.Tick(ctx)
			elapsed := time.Since(start)

			r.emitTickMetrics(processed, elapsed, err)

			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				r.logger.ErrorContext(ctx, "scheduler tick failed", "error", err)
			} else if processed > 0 {
				r.logger.InfoContext(ctx, "scheduler enqueued jobs", "count", processed)
			}
		}
	}
}

func (r *Runner) emitTickMetrics(processed int, elapsed time.Duration, err error) {
	if r.metrics == nil {
		return
	}

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	} else if processed == 0 {
		result = metrics.ResultNoop
	}

	tags := map[string]string{
		"result": result,
	}

	if err != nil {
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}

	r.metrics.Count("scheduler.tick", 1, tags)

	if processed > 0 {
		r.metrics.Count("scheduler.jobs_enqueued", int64(processed), tags)
	}

	if elapsed > 0 {
		r.metrics.Timing("scheduler.tick_duration", elapsed, metrics.CloneTags(tags))
	}

	if err == nil {
		r.metrics.Gauge("scheduler.last_success_epoch", float64(time.Now().Unix()), nil)
	}
}
