package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/domain"
	"github.com/trendythreads/storefront/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, full_name, email, phone_number, district, address, notes, product, size, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	product, err := json.Marshal(order.Product)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.FullName,
		order.Email,
		order.PhoneNumber,
		order.District,
		order.Address,
		order.Notes,
		product,
		order.Size,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, full_name, email, phone_number, district, address, notes, product, size, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	var product []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.FullName,
		&order.Email,
		&order.PhoneNumber,
		&order.District,
		&order.Address,
		&order.Notes,
		&product,
		&order.Size,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	if err := json.Unmarshal(product, &order.Product); err != nil {
		r.logger.Error("Failed to decode product snapshot", zap.Error(err))
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	query := `
		SELECT id, full_name, email, phone_number, district, address, notes, product, size, status, created_at, updated_at
		FROM orders
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var statusArg interface{}
	if status != nil {
		statusArg = string(*status)
	}

	rows, err := r.db.QueryContext(ctx, query, statusArg, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		var product []byte

		err := rows.Scan(
			&order.ID,
			&order.FullName,
			&order.Email,
			&order.PhoneNumber,
			&order.District,
			&order.Address,
			&order.Notes,
			&product,
			&order.Size,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			continue
		}

		if err := json.Unmarshal(product, &order.Product); err != nil {
			r.logger.Warn("Skipping order with bad product snapshot",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
			continue
		}

		orders = append(orders, &order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

type orderEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderEventRepository creates a new order event repository
func NewOrderEventRepository(db *sql.DB, logger *zap.Logger) *orderEventRepository {
	return &orderEventRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderEventRepository) Create(ctx context.Context, event *domain.OrderEvent) error {
	query := `
		INSERT INTO order_events (id, order_id, status, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.OrderID,
		event.Status,
		event.Note,
		event.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order event", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderEventRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	query := `
		SELECT id, order_id, status, note, created_at
		FROM order_events
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to list order events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []*domain.OrderEvent
	for rows.Next() {
		var event domain.OrderEvent
		if err := rows.Scan(&event.ID, &event.OrderID, &event.Status, &event.Note, &event.CreatedAt); err != nil {
			continue
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}
