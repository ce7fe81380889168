package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linkpilot/linkpilot-api/config"
	"github.com/linkpilot/linkpilot-api/internal/core"
	obserrors "github.com/linkpilot/linkpilot-api/internal/observability/errors"
	"github.com/linkpilot/linkpilot-api/internal/observability/metrics"
	"github.com/linkpilot/linkpilot-api/internal/observability/statsd"
)

// ReaperServiceOptions groups dependencies for ReaperService.
type ReaperServiceOptions struct {
	Jobs    core.ReaperRepository      // Required: job queue cleanup repository
	History core.RankHistoryRepository // Required: rank history repository
	Alerts  core.RankAlertRepository   // Required: rank alert repository
	Config  config.ReaperConfig        // Required: reaper configuration
	Logger  *slog.Logger               // Optional: structured logger
	Metrics statsd.Sink                // Optional: metrics sink (StatsD-compatible)
}

// ReaperService provides queue hygiene and data retention.
//
// This service manages:
// - Requeueing running jobs whose lease expired (crashed workers).
// - Failing jobs that exhausted their attempts.
// - Deleting old terminal jobs to prevent database bloat.
// - Trimming rank history and rank alerts to their retention windows.
type ReaperService struct {
	jobs    core.ReaperRepository
	history core.RankHistoryRepository
	alerts  core.RankAlertRepository
	config  config.ReaperConfig
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewReaperService constructs a new ReaperService.
func NewReaperService(opts ReaperServiceOptions) (*ReaperService, error) {
	if opts.Jobs == nil {
		return nil, errors.New("ReaperRepository is required")
	}
	if opts.History == nil {
		return nil, errors.New("RankHistoryRepository is required")
	}
	if opts.Alerts == nil {
		return nil, errors.New("RankAlertRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "reaper_service")
		logger.Debug("ReaperService initialized",
			"interval", opts.Config.Interval,
			"max_attempts", opts.Config.MaxAttempts,
			"job_max_age", opts.Config.JobMaxAge,
			"history_max_age", opts.Config.HistoryMaxAge,
			"alert_max_age", opts.Config.AlertMaxAge,
		)
	}

	return &ReaperService{
		jobs:    opts.Jobs,
		history: opts.History,
		alerts:  opts.Alerts,
		config:  opts.Config,
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// Run starts the reaper loop and runs until the context is cancelled.
// It performs cleanup operations at the configured interval.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *ReaperService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting reaper service", "interval", s.config.Interval)
	}

	// Add jitter to prevent thundering herd if multiple instances start together
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Run cleanup immediately after jitter
	if err := s.runCleanup(ctx); err != nil {
		s.logCleanupError(err, "initial cleanup")
	}

	return s.runLoop(ctx, ticker)
}

// waitWithJitter adds a random delay up to 10% of the interval to prevent thundering herd.
func (s *ReaperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// If crypto/rand fails, skip jitter rather than failing startup
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		}
		return
	}

	// Use modulo on uint64 before converting to avoid overflow
	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
		// Graceful shutdown during jitter
	}
}

// runLoop runs the cleanup loop until context is cancelled.
func (s *ReaperService) runLoop(ctx context.Context, ticker *time.Ticker) error {
	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.InfoContext(ctx, "reaper service stopping", "reason", ctx.Err())
			}
			// Return nil on graceful shutdown to avoid treating it as a failure
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if err := s.runCleanup(ctx); err != nil {
				s.logCleanupError(err, "cleanup")
				if isContextCancellation(err) {
					continue
				}
				// Continue running despite errors
			}
		}
	}
}

// runCleanup performs all cleanup operations.
func (s *ReaperService) runCleanup(ctx context.Context) error {
	start := time.Now()
	var (
		errs               []error
		allContextCanceled = true
		metricsData        = cleanupMetrics{}
	)

	steps := []cleanupStep{
		{
			fn:        s.requeueExpiredLeases,
			label:     "requeue expired leases",
			operation: "requeue_expired",
			count:     &metricsData.RequeuedCount,
			metricErr: &metricsData.RequeuedErr,
		},
		{
			fn:        s.failExhaustedJobs,
			label:     "fail exhausted jobs",
			operation: "fail_exhausted",
			count:     &metricsData.ExhaustedCount,
			metricErr: &metricsData.ExhaustedErr,
		},
		{
			fn:        s.deleteOldJobs,
			label:     "delete old jobs",
			operation: "delete_jobs",
			count:     &metricsData.JobsDeletedCount,
			metricErr: &metricsData.JobsDeletedErr,
		},
		{
			fn:        s.trimRankHistory,
			label:     "trim rank history",
			operation: "trim_history",
			count:     &metricsData.HistoryCount,
			metricErr: &metricsData.HistoryErr,
		},
		{
			fn:        s.trimRankAlerts,
			label:     "trim rank alerts",
			operation: "trim_alerts",
			count:     &metricsData.AlertsCount,
			metricErr: &metricsData.AlertsErr,
		},
	}

	for _, step := range steps {
		outcome := s.executeCleanupStep(ctx, step.fn, step.label)
		*step.count = outcome.count
		*step.metricErr = outcome.metricErr
		if outcome.aggregateErr != nil {
			errs = append(errs, outcome.aggregateErr)
			allContextCanceled = allContextCanceled && outcome.canceled
		}
	}

	metricsData.Elapsed = time.Since(start)
	s.emitCleanupMetrics(steps, metricsData.Elapsed)

	if len(errs) > 0 {
		joined := errors.Join(errs...)
		if allContextCanceled && isContextCancellation(joined) {
			return context.Canceled
		}
		return fmt.Errorf("cleanup failed: %w", joined)
	}

	return nil
}

type cleanupFunc func(context.Context) (int64, error)

type cleanupStep struct {
	fn        cleanupFunc
	label     string
	operation string
	count     *int64
	metricErr *error
}

type cleanupStepOutcome struct {
	count        int64
	metricErr    error
	aggregateErr error
	canceled     bool
}

type cleanupMetrics struct {
	RequeuedCount    int64
	RequeuedErr      error
	ExhaustedCount   int64
	ExhaustedErr     error
	JobsDeletedCount int64
	JobsDeletedErr   error
	HistoryCount     int64
	HistoryErr       error
	AlertsCount      int64
	AlertsErr        error
	Elapsed          time.Duration
}

func (s *ReaperService) executeCleanupStep(
	ctx context.Context,
	fn cleanupFunc,
	label string,
) cleanupStepOutcome {
	count, err := fn(ctx)
	outcome := cleanupStepOutcome{
		count:     count,
		metricErr: suppressContextCancellation(err),
		canceled:  isContextCancellation(err),
	}
	if err != nil {
		outcome.aggregateErr = fmt.Errorf("%s: %w", label, err)
	}
	return outcome
}

// requeueExpiredLeases returns crashed workers' jobs to the queue.
func (s *ReaperService) requeueExpiredLeases(ctx context.Context) (int64, error) {
	count, err := s.jobs.RequeueExpiredLeases(ctx, time.Now().UTC())
	if err != nil {
		return count, err
	}

	if count > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "requeued jobs with expired leases", "count", count)
	}
	return count, nil
}

// failExhaustedJobs fails pending jobs that burned through their attempts.
func (s *ReaperService) failExhaustedJobs(ctx context.Context) (int64, error) {
	count, err := s.jobs.FailExhaustedJobs(ctx, s.config.MaxAttempts)
	if err != nil {
		return count, err
	}

	if count > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "failed exhausted jobs",
			"count", count,
			"max_attempts", s.config.MaxAttempts,
		)
	}
	return count, nil
}

// deleteOldJobs deletes terminal jobs older than the configured max age.
// Loops until no more rows are affected to handle large datasets in batches.
func (s *ReaperService) deleteOldJobs(ctx context.Context) (int64, error) {
	var totalCount int64
	for {
		count, err := s.jobs.DeleteOldJobs(ctx, s.config.JobMaxAge, s.config.BatchSize)
		if err != nil {
			return totalCount, err
		}
		totalCount += count
		if count == 0 {
			break
		}
		// Check context between batches
		if ctx.Err() != nil {
			return totalCount, ctx.Err()
		}
	}

	if totalCount > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "deleted old jobs",
			"count", totalCount,
			"max_age", s.config.JobMaxAge,
		)
	}

	return totalCount, nil
}

// trimRankHistory deletes rank observations past the retention window.
func (s *ReaperService) trimRankHistory(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.config.HistoryMaxAge)
	count, err := s.history.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return count, err
	}

	if count > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "trimmed rank history",
			"count", count,
			"max_age", s.config.HistoryMaxAge,
		)
	}
	return count, nil
}

// trimRankAlerts deletes persisted alerts past the retention window.
func (s *ReaperService) trimRankAlerts(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.config.AlertMaxAge)
	count, err := s.alerts.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return count, err
	}

	if count > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "trimmed rank alerts",
			"count", count,
			"max_age", s.config.AlertMaxAge,
		)
	}
	return count, nil
}

func (s *ReaperService) emitCleanupMetrics(steps []cleanupStep, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}

	var totalCount int64
	var firstErr error
	for _, step := range steps {
		totalCount += *step.count
		if firstErr == nil && *step.metricErr != nil {
			firstErr = *step.metricErr
		}
	}

	result := metrics.ResultSuccess
	if firstErr != nil {
		result = metrics.ResultError
	} else if totalCount == 0 {
		result = metrics.ResultNoop
	}

	tags := map[string]string{
		"result": result,
	}

	if firstErr != nil {
		if class := obserrors.Classify(firstErr); class != "" {
			tags["error_class"] = class
		}
	}

	s.metrics.Count("reaper.cleanup", 1, tags)

	if elapsed > 0 {
		s.metrics.Timing("reaper.cleanup_duration", elapsed, metrics.CloneTags(tags))
	}

	for _, step := range steps {
		s.emitCleanupOperationMetric(step.operation, *step.count, *step.metricErr)
	}

	if firstErr == nil {
		s.metrics.Gauge("reaper.last_success_epoch", float64(time.Now().Unix()), nil)
	}
}

func (s *ReaperService) emitCleanupOperationMetric(operation string, count int64, err error) {
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	} else if count == 0 {
		result = metrics.ResultNoop
	}

	tags := map[string]string{
		"operation": operation,
		"result":    result,
	}

	if err != nil {
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}

	s.metrics.Count("reaper.cleanup_operation", 1, tags)

	if err == nil && count > 0 {
		s.metrics.Count("reaper.rows_processed", count, metrics.CloneTags(tags))
	}
}

func (s *ReaperService) logCleanupError(err error, label string) {
	if err == nil || s.logger == nil {
		return
	}

	if isContextCancellation(err) {
		s.logger.Debug(label+" cancelled by context", "error", err)
		return
	}

	s.logger.Error(label+" failed", "error", err)
}

func suppressContextCancellation(err error) error {
	if isContextCancellation(err) {
		return nil
	}
	return err
}
