package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/trendythreads/storefront/internal/domain"
)

// OrderRepository persists orders
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

// OrderEventRepository persists order tracking history
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error)
}

// AdminRepository persists admin panel users
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Admin, error)
}

// Repositories bundles all repositories
type Repositories struct {
	Order      OrderRepository
	OrderEvent OrderEventRepository
	Admin      AdminRepository
}
