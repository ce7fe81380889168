// Package worker runs rank fetch jobs leased from the job queue.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/linkpilot/linkpilot-api/config"
	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	obserrors "github.com/linkpilot/linkpilot-api/internal/observability/errors"
	"github.com/linkpilot/linkpilot-api/internal/observability/metrics"
	"github.com/linkpilot/linkpilot-api/internal/observability/statsd"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// Runner leases rank fetch jobs and executes them against the rank service.
// It runs a configurable number of worker goroutines; each one leases jobs
// with ReserveNext, keeps the lease alive with a heartbeat goroutine, and
// marks the job completed or failed when the fetch finishes. When the
// heartbeat discovers the lease is gone (a reaper requeued the job), the
// in-flight fetch is cancelled so two workers never record the same brand.
type Runner struct {
	jobs    core.RankJobRepository
	ranks   *service.RankService
	cfg     config.WorkerConfig
	logger  *slog.Logger
	metrics statsd.Sink
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Jobs   core.RankJobRepository
	Ranks  *service.RankService
	Config config.WorkerConfig

	Logger  *slog.Logger
	Metrics statsd.Sink
}

// NewRunner creates a new worker runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Jobs == nil {
		return nil, errors.New("rank job repository is required")
	}
	if opts.Ranks == nil {
		return nil, errors.New("rank service is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Config.Sanitize()

	return &Runner{
		jobs:    opts.Jobs,
		ranks:   opts.Ranks,
		cfg:     opts.Config,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}, nil
}

// Run starts the worker goroutines and blocks until the context is
// cancelled and every in-flight job has settled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting rank fetch workers",
		"concurrency", r.cfg.Concurrency,
		"job_lease", r.cfg.JobLease,
		"poll_interval", r.cfg.PollInterval)

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r.workLoop(ctx, workerID)
		}(i)
	}
	wg.Wait()

	r.logger.Info("rank fetch workers stopped")
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

func (r *Runner) workLoop(ctx context.Context, workerID int) {
	logger := r.logger.With("worker", workerID)

	for {
		if ctx.Err() != nil {
			return
		}

		job, err := r.jobs.ReserveNext(ctx, r.leaseSeconds())
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.ErrorContext(ctx, "reserve job failed", "error", err)
			r.emitReserveError(err)
			r.sleep(ctx, r.cfg.PollInterval)
			continue
		}
		if job == nil {
			r.sleep(ctx, r.cfg.PollInterval)
			continue
		}

		r.processJob(ctx, logger, job)
	}
}

// processJob executes one leased job. The fetch runs under a child context
// that the heartbeat cancels if the lease is lost.
func (r *Runner) processJob(ctx context.Context, logger *slog.Logger, job *model.RankFetchJob) {
	logger.InfoContext(ctx, "processing rank fetch job",
		"job_id", job.ID,
		"brand_id", job.BrandID,
		"attempts", job.Attempts)

	jobCtx, cancel := context.WithCancel(ctx)
	hbDone := make(chan struct{})
	go func() {
		defer close(hbDone)
		r.heartbeatLoop(jobCtx, cancel, job.ID)
	}()

	start := time.Now()
	outcome, err := r.ranks.FetchBrand(jobCtx, job.BrandID)
	elapsed := time.Since(start)

	cancel()
	<-hbDone

	if err != nil {
		logger.ErrorContext(ctx, "rank fetch job failed",
			"job_id", job.ID,
			"brand_id", job.BrandID,
			"error", err)
		if _, failErr := r.jobs.Fail(ctx, job.ID, err.Error()); failErr != nil && ctx.Err() == nil {
			logger.ErrorContext(ctx, "mark job failed errored", "job_id", job.ID, "error", failErr)
		}
		r.emitJobMetrics(nil, elapsed, err)
		return
	}

	updated, completeErr := r.jobs.Complete(ctx, job.ID)
	if completeErr != nil {
		if ctx.Err() == nil {
			logger.ErrorContext(ctx, "mark job completed errored", "job_id", job.ID, "error", completeErr)
		}
		r.emitJobMetrics(outcome, elapsed, completeErr)
		return
	}
	if !updated {
		// Lease was lost mid-fetch and the job moved on without us.
		logger.WarnContext(ctx, "job no longer running at completion", "job_id", job.ID)
	}

	logger.InfoContext(ctx, "rank fetch job completed",
		"job_id", job.ID,
		"brand_id", job.BrandID,
		"fetched", outcome.Fetched,
		"failed", outcome.Failed,
		"duration", elapsed)
	r.emitJobMetrics(outcome, elapsed, nil)
}

// heartbeatLoop extends the job lease until the job context ends. A false
// heartbeat means the lease is gone, so it cancels the fetch.
func (r *Runner) heartbeatLoop(ctx context.Context, cancel context.CancelFunc, jobID string) {
	ticker := time.NewTicker(r.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			alive, err := r.jobs.Heartbeat(ctx, jobID, r.leaseSeconds())
			if err != nil {
				if ctx.Err() == nil {
					r.logger.ErrorContext(ctx, "heartbeat failed", "job_id", jobID, "error", err)
				}
				continue
			}
			if !alive {
				r.logger.WarnContext(ctx, "job lease lost, cancelling fetch", "job_id", jobID)
				cancel()
				return
			}
		}
	}
}

func (r *Runner) leaseSeconds() int {
	return int(r.cfg.JobLease.Seconds())
}

// sleep waits for d or until the context is cancelled.
func (r *Runner) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (r *Runner) emitJobMetrics(outcome *service.FetchOutcome, elapsed time.Duration, err error) {
	if r.metrics == nil {
		return
	}

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}

	tags := map[string]string{
		"result": result,
	}
	if err != nil {
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}

	r.metrics.Count("worker.job", 1, tags)

	if elapsed > 0 {
		r.metrics.Timing("worker.job_duration", elapsed, metrics.CloneTags(tags))
	}

	if outcome != nil {
		if outcome.Fetched > 0 {
			r.metrics.Count("worker.keywords_fetched", int64(outcome.Fetched), nil)
		}
		if outcome.Failed > 0 {
			r.metrics.Count("worker.keywords_failed", int64(outcome.Failed), nil)
		}
	}

	if err == nil {
		r.metrics.Gauge("worker.last_success_epoch", float64(time.Now().Unix()), nil)
	}
}

func (r *Runner) emitReserveError(err error) {
	if r.metrics == nil {
		return
	}
	tags := map[string]string{
		"result": metrics.ResultError,
	}
	if class := obserrors.Classify(err); class != "" {
		tags["error_class"] = class
	}
	r.metrics.Count("worker.reserve", 1, tags)
}
