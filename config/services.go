package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeScheduler runs the rank fetch scheduler.
	ServiceModeScheduler ServiceMode = "scheduler"
	// ServiceModeWorker runs the rank fetch worker.
	ServiceModeWorker ServiceMode = "worker"
	// ServiceModeReaper runs the job reaper for cleanup and retention.
	ServiceModeReaper ServiceMode = "reaper"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeScheduler,
		ServiceModeWorker,
		ServiceModeReaper,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP,
			ServiceModeScheduler,
			ServiceModeWorker,
			ServiceModeReaper:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: http, scheduler, worker, reaper)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// SchedulerConfig contains rank fetch scheduler configuration.
type SchedulerConfig struct {
	// Interval is the scheduler tick interval.
	Interval time.Duration `env:"SCHEDULER_INTERVAL" envDefault:"30s"`

	// BatchSize is the maximum number of due schedules processed per tick.
	BatchSize int `env:"SCHEDULER_BATCH_SIZE" envDefault:"25"`

	// DefaultIntervalMinutes is the fetch interval applied when a schedule
	// is created without an explicit one.
	DefaultIntervalMinutes int `env:"SCHEDULER_DEFAULT_INTERVAL_MINUTES" envDefault:"1440"`
}

// Sanitize applies guardrails to scheduler configuration values.
func (s *SchedulerConfig) Sanitize() {
	if s.Interval < 1*time.Second {
		s.Interval = 1 * time.Second
	}
	if s.BatchSize < 1 {
		s.BatchSize = 1
	}
	if s.DefaultIntervalMinutes < 1 {
		s.DefaultIntervalMinutes = 1440
	}
}

// WorkerConfig contains rank fetch worker configuration.
type WorkerConfig struct {
	// Concurrency is the number of worker goroutines leasing jobs.
	Concurrency int `env:"WORKER_CONCURRENCY" envDefault:"2"`

	// JobLease is the duration a leased job stays invisible to other workers.
	JobLease time.Duration `env:"WORKER_JOB_LEASE" envDefault:"60s"`

	// HeartbeatInterval is how often a running worker extends its lease.
	HeartbeatInterval time.Duration `env:"WORKER_HEARTBEAT_INTERVAL" envDefault:"15s"`

	// PollInterval is how long an idle worker waits before polling again.
	PollInterval time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"2s"`
}

// Sanitize applies guardrails to worker configuration values.
func (w *WorkerConfig) Sanitize() {
	if w.Concurrency < 1 {
		w.Concurrency = 1
	}
	if w.JobLease < 5*time.Second {
		w.JobLease = 5 * time.Second
	}
	if w.HeartbeatInterval < 1*time.Second {
		w.HeartbeatInterval = 1 * time.Second
	}
	if w.HeartbeatInterval > w.JobLease/2 {
		w.HeartbeatInterval = w.JobLease / 2
	}
	if w.PollInterval < 100*time.Millisecond {
		w.PollInterval = 100 * time.Millisecond
	}
}

// ReaperConfig contains job reaper service configuration.
type ReaperConfig struct {
	// Interval is the reaper tick interval.
	Interval time.Duration `env:"REAPER_INTERVAL" envDefault:"5m"`

	// MaxAttempts is how many times a job may be leased before it is failed.
	MaxAttempts int `env:"REAPER_MAX_ATTEMPTS" envDefault:"3"`

	// JobMaxAge is the maximum age for terminal jobs before deletion.
	JobMaxAge time.Duration `env:"REAPER_JOB_MAX_AGE" envDefault:"168h"` // 7 days

	// HistoryMaxAge is the retention window for rank history rows.
	HistoryMaxAge time.Duration `env:"REAPER_HISTORY_MAX_AGE" envDefault:"8760h"` // 365 days

	// AlertMaxAge is the retention window for persisted rank alerts.
	AlertMaxAge time.Duration `env:"REAPER_ALERT_MAX_AGE" envDefault:"2160h"` // 90 days

	// BatchSize is the maximum number of rows to process per operation.
	// Batching prevents long locks and I/O spikes on large tables.
	BatchSize int `env:"REAPER_BATCH_SIZE" envDefault:"1000"`
}

// Sanitize applies guardrails to reaper configuration values.
func (r *ReaperConfig) Sanitize() {
	// Enforce minimum intervals to prevent excessive database load
	if r.Interval < 1*time.Minute {
		r.Interval = 1 * time.Minute
	}
	if r.MaxAttempts < 1 {
		r.MaxAttempts = 1
	}
	if r.JobMaxAge < 1*time.Hour {
		r.JobMaxAge = 1 * time.Hour
	}
	if r.HistoryMaxAge < 24*time.Hour {
		r.HistoryMaxAge = 24 * time.Hour
	}
	if r.AlertMaxAge < 24*time.Hour {
		r.AlertMaxAge = 24 * time.Hour
	}

	// Enforce batch size bounds to prevent excessive locks or inefficiency
	if r.BatchSize < 1 {
		r.BatchSize = 1
	}
	if r.BatchSize > 10000 {
		r.BatchSize = 10000
	}
}
