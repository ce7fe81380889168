// Package reaper provides the adapter that runs queue hygiene and retention.
package reaper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linkpilot/linkpilot-api/config"
	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/observability/statsd"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// Runner wraps the reaper service with repository wiring and runs its
// cleanup loop.
type Runner struct {
	reaper *service.ReaperService
	logger *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB     *sql.DB
	Config config.ReaperConfig
	Logger *slog.Logger

	// Optional dependency injections for testing/decoupling
	Jobs    core.ReaperRepository
	History core.RankHistoryRepository
	Alerts  core.RankAlertRepository
	Metrics statsd.Sink
}

// NewRunner creates a new reaper runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if err := validateRunnerOptions(&opts); err != nil {
		return nil, err
	}

	reaper, err := wireReaperService(opts)
	if err != nil {
		return nil, fmt.Errorf("wire reaper service: %w", err)
	}

	return &Runner{
		reaper: reaper,
		logger: opts.Logger,
	}, nil
}

// validateRunnerOptions validates and sets defaults for RunnerOptions.
func validateRunnerOptions(opts *RunnerOptions) error {
	if opts.DB == nil && (opts.Jobs == nil || opts.History == nil || opts.Alerts == nil) {
		return errors.New("database connection is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return nil
}

// wireReaperService wires up all dependencies for the reaper service.
func wireReaperService(opts RunnerOptions) (*service.ReaperService, error) {
	var jobs core.ReaperRepository
	if opts.Jobs != nil {
		jobs = opts.Jobs
	} else {
		jobs = data.NewRankJobRepo(opts.DB)
	}

	var history core.RankHistoryRepository
	if opts.History != nil {
		history = opts.History
	} else {
		history = data.NewRankHistoryRepo(opts.DB)
	}

	var alerts core.RankAlertRepository
	if opts.Alerts != nil {
		alerts = opts.Alerts
	} else {
		alerts = data.NewRankAlertRepo(opts.DB)
	}

	return service.NewReaperService(service.ReaperServiceOptions{
		Jobs:    jobs,
		History: history,
		Alerts:  alerts,
		Config:  opts.Config,
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
}

// Run starts the reaper loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting reaper runner")
	return r.reaper.Run(ctx)
}
