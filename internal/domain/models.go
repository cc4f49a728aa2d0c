package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product as the storefront renders it
type Product struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	NormalPrice float64       `json:"normalPrice"`
	OfferPrice  *float64      `json:"offerPrice,omitempty"`
	Image       string        `json:"image,omitempty"`
	Category    string        `json:"category,omitempty"`
	Sizes       []ProductSize `json:"sizes,omitempty"`
}

// ProductSize is a purchasable variant of a product
type ProductSize struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// ProductSnapshot is the pricing snapshot captured when checkout opens.
// It is embedded in the order payload as-is, so a price change made
// mid-checkout is never silently applied to the order.
type ProductSnapshot struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	NormalPrice float64  `json:"normalPrice"`
	OfferPrice  *float64 `json:"offerPrice,omitempty"`
}

// CartItem is one cart entry. Entries are distinguished by the
// (ID, Size, Color) triple; an empty Size or Color means the variant
// dimension is absent, not a wildcard.
type CartItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Image       string   `json:"image,omitempty"`
	Size        string   `json:"size,omitempty"`
	Color       string   `json:"color,omitempty"`
	Quantity    int      `json:"quantity"`
	Stock       *int     `json:"stock,omitempty"`
	NormalPrice *float64 `json:"normalPrice,omitempty"`
	OfferPrice  *float64 `json:"offerPrice,omitempty"`
}

// SameVariant reports whether other refers to the same (id, size, color)
// variant as this entry.
func (i CartItem) SameVariant(id, size, color string) bool {
	return i.ID == id && i.Size == size && i.Color == color
}

// WishlistItem is one wishlist entry, keyed by product ID only
type WishlistItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Category    string   `json:"category,omitempty"`
	NormalPrice *float64 `json:"normalPrice,omitempty"`
	OfferPrice  *float64 `json:"offerPrice,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

// Order represents a placed order
type Order struct {
	ID          uuid.UUID
	FullName    string
	Email       string
	PhoneNumber string
	District    string
	Address     string
	Notes       string
	Product     ProductSnapshot // stored as JSONB
	Size        string
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderEvent is one entry in an order's tracking history
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Status    OrderStatus
	Note      string
	CreatedAt time.Time
}

// Admin represents an admin panel user
type Admin struct {
	ID         uuid.UUID
	Name       string
	APIKeyHash string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
