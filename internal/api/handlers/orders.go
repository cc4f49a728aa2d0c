package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/domain"
	"github.com/trendythreads/storefront/internal/repository"
	"github.com/trendythreads/storefront/internal/service"
	"github.com/trendythreads/storefront/pkg/errors"
)

// CreateOrderResponse represents the order-creation result. The
// storefront checkout only looks at the success flag and message.
type CreateOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	OrderID string `json:"orderId,omitempty"`
}

// OrderResponse represents the order detail response
type OrderResponse struct {
	ID          string                 `json:"id"`
	FullName    string                 `json:"fullName"`
	Email       string                 `json:"email"`
	PhoneNumber string                 `json:"phoneNumber"`
	District    string                 `json:"district"`
	Address     string                 `json:"address"`
	Notes       string                 `json:"notes,omitempty"`
	Product     domain.ProductSnapshot `json:"product"`
	Size        string                 `json:"size"`
	Status      domain.OrderStatus     `json:"status"`
	History     []OrderEventResponse   `json:"history"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
}

// OrderEventResponse is one tracking history entry
type OrderEventResponse struct {
	Status    domain.OrderStatus `json:"status"`
	Note      string             `json:"note,omitempty"`
	CreatedAt string             `json:"createdAt"`
}

// HandleCreateOrder handles POST /api/orders
func HandleCreateOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, CreateOrderResponse{
				Success: false,
				Message: "Invalid order payload",
			})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, err := orderService.CreateOrder(c.Request.Context(), req)
		if err != nil {
			logger.Error("Failed to create order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, CreateOrderResponse{
				Success: false,
				Message: "Failed to create order",
			})
			return
		}

		c.JSON(http.StatusCreated, CreateOrderResponse{
			Success: true,
			Message: "Order placed successfully",
			OrderID: order.ID.String(),
		})
	}
}

// HandleGetOrder handles GET /api/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderIDStr := c.Param("id")
		orderID, err := uuid.Parse(orderIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		events, err := repos.OrderEvent.ListByOrderID(c.Request.Context(), orderID)
		if err != nil {
			logger.Error("Failed to get order history", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order, events))
	}
}

func toOrderResponse(order *domain.Order, events []*domain.OrderEvent) OrderResponse {
	history := make([]OrderEventResponse, len(events))
	for i, event := range events {
		history[i] = OrderEventResponse{
			Status:    event.Status,
			Note:      event.Note,
			CreatedAt: event.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return OrderResponse{
		ID:          order.ID.String(),
		FullName:    order.FullName,
		Email:       order.Email,
		PhoneNumber: order.PhoneNumber,
		District:    order.District,
		Address:     order.Address,
		Notes:       order.Notes,
		Product:     order.Product,
		Size:        order.Size,
		Status:      order.Status,
		History:     history,
		CreatedAt:   order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
