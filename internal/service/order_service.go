package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/domain"
	"github.com/trendythreads/storefront/internal/repository"
	"github.com/trendythreads/storefront/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

// CreateOrder creates an order from a checkout submission
func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	order := &domain.Order{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		District:    req.District,
		Address:     req.Address,
		Notes:       req.Notes,
		Product:     req.Product.Snapshot(),
		Size:        req.Size,
		Status:      domain.OrderStatusPending,
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	// Seed the tracking history
	event := &domain.OrderEvent{
		OrderID: order.ID,
		Status:  domain.OrderStatusPending,
		Note:    "Order placed",
	}
	s.repos.OrderEvent.Create(ctx, event)

	return order, nil
}

// UpdateStatus moves an order to a new status, guarding the transition
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus, note string) error {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	// Validate state transition
	if !order.Status.CanTransitionTo(newStatus) {
		return &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   newStatus,
		}
	}

	// Update status
	if err := s.repos.Order.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return err
	}

	// Log event
	event := &domain.OrderEvent{
		OrderID: orderID,
		Status:  newStatus,
		Note:    note,
	}
	s.repos.OrderEvent.Create(ctx, event)

	return nil
}
