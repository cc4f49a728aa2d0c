package service

import "github.com/trendythreads/storefront/internal/domain"

// CreateOrderRequest represents the order submission payload
type CreateOrderRequest struct {
	FullName    string         `json:"fullName" binding:"required,max=100"`
	Email       string         `json:"email" binding:"required"`
	Address     string         `json:"address" binding:"required,max=500"`
	PhoneNumber string         `json:"phoneNumber" binding:"required"`
	District    string         `json:"district" binding:"required"`
	Product     ProductPayload `json:"product" binding:"required"`
	Size        string         `json:"size" binding:"required"`
	Notes       string         `json:"notes" binding:"max=500"`
}

// ProductPayload is the pricing snapshot the storefront captured when
// checkout opened. It is stored verbatim; the server does not re-price.
type ProductPayload struct {
	ID          string   `json:"id" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	NormalPrice float64  `json:"normalPrice" binding:"min=0"`
	OfferPrice  *float64 `json:"offerPrice,omitempty"`
}

// Snapshot converts the payload to the domain snapshot type
func (p ProductPayload) Snapshot() domain.ProductSnapshot {
	return domain.ProductSnapshot{
		ID:          p.ID,
		Title:       p.Title,
		NormalPrice: p.NormalPrice,
		OfferPrice:  p.OfferPrice,
	}
}

// UpdateOrderStatusRequest represents an admin status change
type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}
