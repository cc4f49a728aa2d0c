package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/api/handlers"
	"github.com/trendythreads/storefront/internal/api/middleware"
	"github.com/trendythreads/storefront/internal/config"
	"github.com/trendythreads/storefront/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Storefront routes
	api := router.Group("/api")
	{
		api.POST("/orders", handlers.HandleCreateOrder(repos, logger))
		api.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))

		// Admin routes (require API key authentication)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			adminRoutes.GET("/orders", handlers.HandleListOrders(repos, logger))
			adminRoutes.PATCH("/orders/:id/status", handlers.HandleUpdateOrderStatus(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
