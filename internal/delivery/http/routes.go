package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flavorquiz/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)))
	{
		answers := v1.Group("/answers")
		{
			answers.POST("/compare", handler.CompareAnswer)
			answers.POST("/compare/category", handler.CompareCategoryAnswer)
		}

		rules := v1.Group("/rules")
		{
			rules.GET("/flavors", handler.FlavorRules)
			rules.GET("/spellings", handler.SpellingRules)
		}

		v1.GET("/taxonomy/:name", handler.TaxonomyEntry)
	}

	return router
}
