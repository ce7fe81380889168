package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/linkpilot/linkpilot-api/config"
	"github.com/linkpilot/linkpilot-api/internal/adapters/reaper"
	schedrunner "github.com/linkpilot/linkpilot-api/internal/adapters/scheduler"
	"github.com/linkpilot/linkpilot-api/internal/adapters/worker"
	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/observability/statsd"
	"github.com/linkpilot/linkpilot-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// SchedulerConfig contains configuration for the scheduler loop.
type SchedulerConfig struct {
	DB      *sql.DB
	Logger  *slog.Logger
	Config  config.SchedulerConfig
	Metrics statsd.Sink
}

// RunScheduler starts the scheduler service.
func RunScheduler(ctx context.Context, cfg SchedulerConfig) error {
	runner, err := schedrunner.NewRunner(schedrunner.RunnerOptions{
		DB:      cfg.DB,
		Config:  cfg.Config,
		Logger:  cfg.Logger,
		Metrics: cfg.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create scheduler runner: %w", err)
	}

	return runner.Run(ctx)
}

// WorkerConfig contains configuration for the rank fetch worker.
type WorkerConfig struct {
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
	Config      config.WorkerConfig
	Provider    config.ProviderConfig
	Metrics     statsd.Sink
}

// RunWorker starts the rank fetch worker service.
func RunWorker(ctx context.Context, cfg WorkerConfig) error {
	rankOpts := service.RankServiceOptions{
		Keywords: data.NewTrackedKeywordRepo(cfg.DB),
		History:  data.NewRankHistoryRepo(cfg.DB),
		Provider: buildRankingProvider(cfg.Provider, cfg.Logger),
		Logger:   cfg.Logger,
	}
	// Share the statistics cache so fetched observations invalidate stale views.
	if cfg.RedisClient != nil {
		rankOpts.Cache = data.NewRedisCacheRepo(cfg.RedisClient)
	}

	runner, err := worker.NewRunner(worker.RunnerOptions{
		Jobs:    data.NewRankJobRepo(cfg.DB),
		Ranks:   service.NewRankService(rankOpts),
		Config:  cfg.Config,
		Logger:  cfg.Logger,
		Metrics: cfg.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create worker runner: %w", err)
	}

	return runner.Run(ctx)
}

// ReaperConfig contains configuration for the reaper loop.
type ReaperConfig struct {
	DB      *sql.DB
	Logger  *slog.Logger
	Config  config.ReaperConfig
	Metrics statsd.Sink
}

// RunReaper starts the reaper service.
func RunReaper(ctx context.Context, cfg ReaperConfig) error {
	runner, err := reaper.NewRunner(reaper.RunnerOptions{
		DB:      cfg.DB,
		Config:  cfg.Config,
		Logger:  cfg.Logger,
		Metrics: cfg.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create reaper runner: %w", err)
	}

	return runner.Run(ctx)
}
