package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/domain"
	"github.com/trendythreads/storefront/internal/repository"
	"github.com/trendythreads/storefront/pkg/errors"
)

const adminContextKey = "admin"

// AuthMiddleware authenticates admin requests by the X-API-Key header
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		admin, err := repos.Admin.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			if _, ok := err.(*errors.ErrUnauthorized); ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
				return
			}
			logger.Error("Failed to authenticate admin", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(adminContextKey, admin)
		c.Next()
	}
}

// GetAdminFromContext returns the authenticated admin, if any
func GetAdminFromContext(c *gin.Context) (*domain.Admin, bool) {
	val, ok := c.Get(adminContextKey)
	if !ok {
		return nil, false
	}
	admin, ok := val.(*domain.Admin)
	return admin, ok
}
