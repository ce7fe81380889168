package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkpilot/linkpilot-api/config"
	"github.com/linkpilot/linkpilot-api/internal/adapters/semrush"
	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/observability/notify"
	"github.com/linkpilot/linkpilot-api/internal/observability/notify/pagerduty"
	"github.com/linkpilot/linkpilot-api/internal/observability/notify/slack"
	"github.com/linkpilot/linkpilot-api/internal/observability/statsd"
	"github.com/linkpilot/linkpilot-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Brands        *service.BrandService
	Backlinks     *service.BacklinkService
	Prospects     *service.ProspectService
	Keywords      *service.KeywordService
	Reconcile     *service.ReconcileService
	Imports       *service.ImportService
	Ranks         *service.RankService
	Movers        *service.MoversService
	Imposters     *service.ImposterService
	Jobs          *service.RankJobService
	Scheduler     *service.SchedulerService
	Auth          *service.AuthService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink    *statsd.Client
	MetricsConfig  config.ObservabilityMetricsConfig
	MoversNotifier notify.Sink
	NotifierConfig config.ObservabilityNotificationsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB               *sql.DB
	Redis            redis.UniversalClient
	BrandRepo        *data.BrandRepo
	BacklinkRepo     *data.BacklinkRepo
	ProspectRepo     *data.ProspectRepo
	KeywordRepo      *data.TrackedKeywordRepo
	LinkDomainRepo   *data.LinkDomainRepo
	ImportRepo       *data.ImportRepo
	ImposterRepo     *data.ImposterWatchRepo
	RankHistoryRepo  *data.RankHistoryRepo
	RankAlertRepo    *data.RankAlertRepo
	RankJobRepo      *data.RankJobRepo
	RankScheduleRepo *data.RankScheduleRepo
	CacheRepo        *data.RedisCacheRepo
}

// buildObservability configures metrics and notification adapters.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  "linkpilot",
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	moversNotifier := buildMoversNotifier(obsLogger, cfg.Notifications)

	return ObservabilityContainer{
		MetricsSink:    metricsSink,
		MetricsConfig:  cfg.Metrics,
		MoversNotifier: moversNotifier,
		NotifierConfig: cfg.Notifications,
	}
}

// namedSink pairs a movers sink with a label for failure logging.
type namedSink struct {
	name string
	sink notify.Sink
}

// moversFanout delivers one movers payload to every configured sink. One
// sink failing never blocks delivery to the others.
type moversFanout struct {
	sinks  []namedSink
	logger *slog.Logger
}

func (f *moversFanout) SendMovers(ctx context.Context, payload notify.MoversPayload) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.sink.SendMovers(ctx, payload); err != nil {
			f.logger.ErrorContext(ctx, "movers notification failed",
				"sink", s.name, "brand_id", payload.BrandID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

// buildMoversNotifier wires the configured notification sinks into a single
// fan-out. Returns nil when notifications are disabled or no sink is usable,
// which the movers service treats as "log only".
//
//nolint:ireturn // returning notify.Sink keeps sink selection flexible.
func buildMoversNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) notify.Sink {
	if !cfg.Enabled {
		return nil
	}

	sinks := make([]namedSink, 0, 2)

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL: cfg.Slack.WebhookURL,
			Channel:    cfg.Slack.Channel,
			Username:   cfg.Slack.Username,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			logger.Error("failed to initialise slack notifier", "error", err)
		} else {
			sinks = append(sinks, namedSink{name: "slack", sink: client})
		}
	}

	if cfg.PagerDuty.Enabled {
		client, err := pagerduty.NewClient(pagerduty.Config{
			RoutingKey: cfg.PagerDuty.RoutingKey,
			Source:     cfg.PagerDuty.Source,
			Component:  cfg.PagerDuty.Component,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			logger.Error("failed to initialise pagerduty notifier", "error", err)
		} else {
			sinks = append(sinks, namedSink{name: "pagerduty", sink: client})
		}
	}

	if len(sinks) == 0 {
		return nil
	}

	return &moversFanout{
		sinks:  sinks,
		logger: logger.With("component", "movers_notifier"),
	}
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	repos := &serviceRepositories{
		DB:               db,
		Redis:            redisClient,
		BrandRepo:        data.NewBrandRepo(db),
		BacklinkRepo:     data.NewBacklinkRepo(db),
		ProspectRepo:     data.NewProspectRepo(db),
		KeywordRepo:      data.NewTrackedKeywordRepo(db),
		LinkDomainRepo:   data.NewLinkDomainRepo(db),
		ImportRepo:       data.NewImportRepo(db),
		ImposterRepo:     data.NewImposterWatchRepo(db),
		RankHistoryRepo:  data.NewRankHistoryRepo(db),
		RankAlertRepo:    data.NewRankAlertRepo(db),
		RankJobRepo:      data.NewRankJobRepo(db),
		RankScheduleRepo: data.NewRankScheduleRepo(db),
	}
	if redisClient != nil {
		repos.CacheRepo = data.NewRedisCacheRepo(redisClient)
	}
	return repos
}

// buildRankingProvider wires the external ranking vendor when configured.
//
//nolint:ireturn // returning core.RankingProvider keeps vendor selection flexible.
func buildRankingProvider(cfg config.ProviderConfig, logger *slog.Logger) core.RankingProvider {
	if !cfg.IsConfigured() {
		if logger != nil {
			logger.Warn("ranking provider not configured; rank fetch jobs will fail until a provider API key is set")
		}
		return nil
	}

	provider, err := semrush.NewProvider(semrush.Config{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Database:   cfg.Database,
		Timeout:    cfg.Timeout,
		RetryLimit: cfg.RetryLimit,
		Logger:     logger,
	})
	if err != nil {
		if logger != nil {
			logger.Error("failed to initialise ranking provider", "error", err)
		}
		return nil
	}
	return provider
}

func newRankService(repos *serviceRepositories, provider core.RankingProvider, logger *slog.Logger) *service.RankService {
	opts := service.RankServiceOptions{
		Keywords: repos.KeywordRepo,
		History:  repos.RankHistoryRepo,
		Provider: provider,
		Logger:   logger,
	}
	if repos.CacheRepo != nil {
		opts.Cache = repos.CacheRepo
	}
	return service.NewRankService(opts)
}

func newMoversService(repos *serviceRepositories, notifier notify.Sink, logger *slog.Logger) *service.MoversService {
	return service.NewMoversService(service.MoversServiceOptions{
		Brands:   repos.BrandRepo,
		Keywords: repos.KeywordRepo,
		History:  repos.RankHistoryRepo,
		Alerts:   repos.RankAlertRepo,
		Notifier: notifier,
		Logger:   logger,
	})
}

func newImportService(repos *serviceRepositories, logger *slog.Logger) *service.ImportService {
	return service.NewImportService(service.ImportServiceOptions{
		Brands:    repos.BrandRepo,
		Backlinks: repos.BacklinkRepo,
		Prospects: repos.ProspectRepo,
		Imports:   repos.ImportRepo,
		Logger:    logger,
	})
}

func newReconcileService(repos *serviceRepositories, logger *slog.Logger) *service.ReconcileService {
	return service.NewReconcileService(service.ReconcileServiceOptions{
		Backlinks:   repos.BacklinkRepo,
		Prospects:   repos.ProspectRepo,
		LinkDomains: repos.LinkDomainRepo,
		Logger:      logger,
	})
}

func newAuthService(cfg config.AuthConfig, redisClient redis.UniversalClient, logger *slog.Logger) *service.AuthService {
	return BuildAuthService(AuthConfig{
		Auth:        cfg,
		RedisClient: redisClient,
		Logger:      logger,
	})
}

// DomainServicesOptions groups inputs for domain service wiring.
type DomainServicesOptions struct {
	Repos         *serviceRepositories
	Observability ObservabilityContainer
	Config        *config.AppConfig
	Logger        *slog.Logger
}

// buildDomainServices wires business services using repositories and observability adapters.
func buildDomainServices(opts *DomainServicesOptions) ServiceContainer {
	if opts == nil {
		return ServiceContainer{}
	}
	svcLogger := opts.Logger
	if svcLogger == nil {
		svcLogger = slog.Default()
	}

	appCfg := opts.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	provider := buildRankingProvider(appCfg.Provider, svcLogger)

	return ServiceContainer{
		Brands:    service.NewBrandService(service.BrandServiceOptions{Repo: opts.Repos.BrandRepo, Logger: svcLogger}),
		Backlinks: service.NewBacklinkService(service.BacklinkServiceOptions{Repo: opts.Repos.BacklinkRepo, Logger: svcLogger}),
		Prospects: service.NewProspectService(service.ProspectServiceOptions{Repo: opts.Repos.ProspectRepo, Logger: svcLogger}),
		Keywords:  service.NewKeywordService(service.KeywordServiceOptions{Repo: opts.Repos.KeywordRepo, Logger: svcLogger}),
		Reconcile: newReconcileService(opts.Repos, svcLogger),
		Imports:   newImportService(opts.Repos, svcLogger),
		Ranks:     newRankService(opts.Repos, provider, svcLogger),
		Movers:    newMoversService(opts.Repos, opts.Observability.MoversNotifier, svcLogger),
		Imposters: service.NewImposterService(service.ImposterServiceOptions{
			Watches:     opts.Repos.ImposterRepo,
			LinkDomains: opts.Repos.LinkDomainRepo,
			Logger:      svcLogger,
		}),
		Jobs: service.NewRankJobService(service.RankJobServiceOptions{
			Jobs:   opts.Repos.RankJobRepo,
			Brands: opts.Repos.BrandRepo,
			Logger: svcLogger,
		}),
		Scheduler: service.NewSchedulerService(service.SchedulerServiceOptions{
			Schedules: opts.Repos.RankScheduleRepo,
			Jobs:      opts.Repos.RankJobRepo,
			Config:    appCfg.Scheduler,
			Logger:    svcLogger,
		}),
		Auth:          newAuthService(appCfg.Auth, opts.Repos.Redis, svcLogger),
		Observability: opts.Observability,
	}
}

// NewServices builds the full service container from shared infrastructure.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var obsCfg config.ObservabilityConfig
	if deps.Config != nil {
		obsCfg = deps.Config.Observability
	}
	observability := buildObservability(logger, obsCfg)
	repos := buildRepositories(deps.DB, deps.RedisClient)
	return buildDomainServices(&DomainServicesOptions{
		Repos:         repos,
		Observability: observability,
		Config:        deps.Config,
		Logger:        logger,
	})
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// serviceStartupDeps groups dependencies for service startup.
type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	mode config.ServiceMode
	name string
	done <-chan struct{}
}

// startHTTPServerIfEnabled starts the HTTP server if enabled.
func startHTTPServerIfEnabled(deps *serviceStartupDeps) *http.Server {
	if deps == nil || deps.cfg == nil || !deps.enabledServices[config.ServiceModeHTTP] {
		return nil
	}
	return StartHTTPServer(&HTTPServerConfig{
		Config:   deps.cfg.Config,
		Services: deps.cfg.Services,
		Logger:   deps.logger,
	})
}

func launchBackground(ctx context.Context, deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := descriptor.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
			select {
			case deps.errCh <- errMsg:
			case <-ctx.Done():
			default:
				deps.logger.WarnContext(ctx, "dropping background service error",
					"service", descriptor.name, "error", errMsg)
			}
		}
	}()

	deps.logger.InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)

	return done
}

func startBackgroundServices(deps *serviceStartupDeps, services []backgroundService) []backgroundServiceHandle {
	if deps == nil {
		return nil
	}
	handles := make([]backgroundServiceHandle, 0, len(services))

	for _, svc := range services {
		done := launchBackground(deps.ctx, deps, svc)
		if done == nil {
			continue
		}

		handles = append(handles, backgroundServiceHandle{
			mode: svc.mode,
			name: svc.name,
			done: done,
		})
	}

	return handles
}

func newSchedulerBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeScheduler,
		name: "scheduler",
		start: func(ctx context.Context) error {
			if deps == nil || deps.cfg == nil {
				return nil
			}
			var schedulerCfg config.SchedulerConfig
			if deps.cfg.Config != nil {
				schedulerCfg = deps.cfg.Config.Scheduler
			}
			return RunScheduler(ctx, SchedulerConfig{
				DB:      deps.cfg.DB,
				Logger:  deps.logger,
				Config:  schedulerCfg,
				Metrics: deps.cfg.Services.Observability.MetricsSink,
			})
		},
	}
}

func newWorkerBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeWorker,
		name: "worker",
		start: func(ctx context.Context) error {
			if deps == nil || deps.cfg == nil {
				return nil
			}
			var workerCfg config.WorkerConfig
			var providerCfg config.ProviderConfig
			if deps.cfg.Config != nil {
				workerCfg = deps.cfg.Config.Worker
				providerCfg = deps.cfg.Config.Provider
			}
			return RunWorker(ctx, WorkerConfig{
				DB:          deps.cfg.DB,
				RedisClient: deps.cfg.RedisClient,
				Logger:      deps.logger,
				Config:      workerCfg,
				Provider:    providerCfg,
				Metrics:     deps.cfg.Services.Observability.MetricsSink,
			})
		},
	}
}

func newReaperBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeReaper,
		name: "reaper",
		start: func(ctx context.Context) error {
			if deps == nil || deps.cfg == nil {
				return nil
			}
			var reaperCfg config.ReaperConfig
			if deps.cfg.Config != nil {
				reaperCfg = deps.cfg.Config.Reaper
			}
			return RunReaper(ctx, ReaperConfig{
				DB:      deps.cfg.DB,
				Logger:  deps.logger,
				Config:  reaperCfg,
				Metrics: deps.cfg.Services.Observability.MetricsSink,
			})
		},
	}
}

func buildBackgroundServices(deps *serviceStartupDeps) []backgroundService {
	if deps == nil {
		return nil
	}
	return []backgroundService{
		newSchedulerBackgroundService(deps),
		newWorkerBackgroundService(deps),
		newReaperBackgroundService(deps),
	}
}

// ServiceStartupResult holds the results of starting all services.
type ServiceStartupResult struct {
	HTTPServer *http.Server
	Background []backgroundServiceHandle
}

// startServices starts all enabled services and returns their completion channels.
func startServices(deps *serviceStartupDeps) ServiceStartupResult {
	return ServiceStartupResult{
		HTTPServer: startHTTPServerIfEnabled(deps),
		Background: startBackgroundServices(deps, buildBackgroundServices(deps)),
	}
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	ctx := context.Background()
	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	// Determine which services are enabled
	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	errCh := make(chan error, errorChannelBufferSize(enabledServices))

	// Start all enabled services
	result := startServices(&serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           errCh,
	})

	// Wait for shutdown signal or error
	return waitForShutdown(shutdownConfig{
		ctx:         serviceCtx,
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  result.HTTPServer,
		logger:      logger,
		backgrounds: result.Background,
	})
}

func errorChannelCapacity(enabled map[config.ServiceMode]bool) int {
	modes := []config.ServiceMode{
		config.ServiceModeHTTP,
		config.ServiceModeScheduler,
		config.ServiceModeWorker,
		config.ServiceModeReaper,
	}

	count := 0
	for _, mode := range modes {
		if enabled[mode] {
			count++
		}
	}
	return count
}

func errorChannelBufferSize(enabled map[config.ServiceMode]bool) int {
	size := errorChannelCapacity(enabled) + 1
	if size < 1 {
		return 1
	}
	return size
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel() // Cancel service context before waiting
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel() // Cancel service context before waiting
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop attempts to gracefully stop all services.
func gracefulStop(cfg shutdownConfig) error {
	// Gracefully stop HTTP server if running
	if cfg.httpServer != nil {
		// Create a timeout context for HTTP shutdown
		shutdownCtx, cancel := context.WithTimeout(cfg.ctx, shutdownWaitTimeout)
		defer cancel()

		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			return err
		}
	}

	// Wait for background services to finish
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	return nil
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
