// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fintrack/analytics-backend/internal/integration/entrypoint/controller"
	"github.com/fintrack/analytics-backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	analyticsController *controller.AnalyticsController
	rateLimiter         *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	analyticsController *controller.AnalyticsController,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		analyticsController: analyticsController,
		rateLimiter:         rateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Analytics routes (require authentication)
		if r.analyticsController != nil && r.authMiddleware != nil {
			analytics := v1.Group("/analytics")
			analytics.Use(r.authMiddleware.Authenticate())
			if r.rateLimiter != nil {
				analytics.Use(r.rateLimiter.Middleware())
			}
			{
				analytics.GET("/summary", r.analyticsController.GetSummary)
				analytics.GET("/breakdown", r.analyticsController.GetBreakdown)
				analytics.GET("/trend", r.analyticsController.GetTrend)
				analytics.GET("/daily-comparison", r.analyticsController.GetDailyComparison)
				analytics.GET("/insights", r.analyticsController.GetInsights)
				analytics.GET("/data-range", r.analyticsController.GetDataRange)
				analytics.DELETE("/cache", r.analyticsController.InvalidateCache)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
