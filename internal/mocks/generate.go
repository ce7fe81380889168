// Package mocks provides mock implementations for testing the linkpilot reconciliation and ranking system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockBrandRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(brand, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=brand_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core BrandRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=backlink_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core BacklinkRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=prospect_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core ProspectRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=link_domain_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core LinkDomainRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=tracked_keyword_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core TrackedKeywordRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=rank_history_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core RankHistoryRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=rank_alert_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core RankAlertRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=import_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core ImportRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=imposter_watch_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core ImposterWatchRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=rank_job_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core RankJobRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=rank_schedule_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core RankScheduleRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=reaper_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core ReaperRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=ranking_provider_mock.go github.com/linkpilot/linkpilot-api/internal/core RankingProvider
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_repository_mock.go github.com/linkpilot/linkpilot-api/internal/core CacheRepository
