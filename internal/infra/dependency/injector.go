// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fintrack/analytics-backend/config"
	"github.com/fintrack/analytics-backend/internal/application/usecase/analytics"
	"github.com/fintrack/analytics-backend/internal/infra/server/router"
	"github.com/fintrack/analytics-backend/internal/integration/adapters"
	"github.com/fintrack/analytics-backend/internal/integration/cache"
	"github.com/fintrack/analytics-backend/internal/integration/entrypoint/controller"
	"github.com/fintrack/analytics-backend/internal/integration/entrypoint/middleware"
	"github.com/fintrack/analytics-backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, dbHealthChecker func() bool) *Injector {
	// Create repositories
	movementRepo := persistence.NewMovementRepository(db)

	// Create result cache (Redis when enabled, in-memory otherwise)
	resultCache := newResultCache(cfg)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	// Create analytics use cases
	getSummaryUseCase := analytics.NewGetSummaryUseCase(movementRepo, resultCache)
	getBreakdownUseCase := analytics.NewGetBreakdownUseCase(movementRepo, resultCache)
	getTrendUseCase := analytics.NewGetTrendUseCase(movementRepo, resultCache)
	getDailyComparisonUseCase := analytics.NewGetDailyComparisonUseCase(movementRepo, resultCache)
	getInsightsUseCase := analytics.NewGetInsightsUseCase(movementRepo, resultCache)
	getDataRangeUseCase := analytics.NewGetDataRangeUseCase(movementRepo)
	invalidateCacheUseCase := analytics.NewInvalidateCacheUseCase(resultCache)

	// Create controllers
	healthController := controller.NewHealthController(dbHealthChecker)

	analyticsController := controller.NewAnalyticsController(
		getSummaryUseCase,
		getBreakdownUseCase,
		getTrendUseCase,
		getDailyComparisonUseCase,
		getInsightsUseCase,
		getDataRangeUseCase,
		invalidateCacheUseCase,
		controller.AnalyticsDefaults{
			TrendPeriods:      cfg.Analytics.TrendPeriods,
			ComparisonPeriods: cfg.Analytics.ComparisonPeriods,
			InsightPeriods:    cfg.Analytics.InsightPeriods,
		},
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiterWithConfig(10000, 1*time.Minute)
	} else {
		rateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, analyticsController, rateLimiter, authMiddleware)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}

// newResultCache builds the analytics result cache from configuration.
func newResultCache(cfg *config.Config) analytics.ResultCache {
	if !cfg.Redis.Enabled {
		slog.Info("Using in-memory analytics cache", "ttl", cfg.Analytics.CacheTTL)
		return cache.NewMemoryCache(cfg.Analytics.CacheTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	slog.Info("Using Redis analytics cache",
		"addr", cfg.Redis.Addr,
		"ttl", cfg.Analytics.CacheTTL,
	)
	return cache.NewRedisCache(client, cfg.Analytics.CacheTTL)
}
