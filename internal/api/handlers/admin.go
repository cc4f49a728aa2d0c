package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/api/middleware"
	"github.com/trendythreads/storefront/internal/domain"
	"github.com/trendythreads/storefront/internal/repository"
	"github.com/trendythreads/storefront/internal/service"
	"github.com/trendythreads/storefront/pkg/errors"
)

// OrderSummaryResponse is one row in the admin order list
type OrderSummaryResponse struct {
	ID        string             `json:"id"`
	FullName  string             `json:"fullName"`
	District  string             `json:"district"`
	Product   string             `json:"product"`
	Size      string             `json:"size"`
	Status    domain.OrderStatus `json:"status"`
	CreatedAt string             `json:"createdAt"`
}

// HandleListOrders handles GET /api/admin/orders
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ok := middleware.GetAdminFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var status *domain.OrderStatus
		if s := c.Query("status"); s != "" {
			st := domain.OrderStatus(s)
			if !st.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
				return
			}
			status = &st
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		if offset < 0 {
			offset = 0
		}

		orders, err := repos.Order.List(c.Request.Context(), status, limit, offset)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		summaries := make([]OrderSummaryResponse, len(orders))
		for i, order := range orders {
			summaries[i] = OrderSummaryResponse{
				ID:        order.ID.String(),
				FullName:  order.FullName,
				District:  order.District,
				Product:   order.Product.Title,
				Size:      order.Size,
				Status:    order.Status,
				CreatedAt: order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}

		c.JSON(http.StatusOK, gin.H{"orders": summaries})
	}
}

// HandleUpdateOrderStatus handles PATCH /api/admin/orders/:id/status
func HandleUpdateOrderStatus(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ok := middleware.GetAdminFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderIDStr := c.Param("id")
		orderID, err := uuid.Parse(orderIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		var req service.UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.UpdateStatus(c.Request.Context(), orderID, req.Status, req.Note); err != nil {
			if _, ok := err.(*errors.ErrInvalidStateTransition); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to update order status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     orderID.String(),
			"status": req.Status,
		})
	}
}
