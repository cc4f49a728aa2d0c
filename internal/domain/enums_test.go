package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusRejected,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	} {
		assert.True(t, s.IsValid(), string(s))
	}

	assert.False(t, OrderStatus("UNKNOWN").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to confirmed", OrderStatusPending, OrderStatusConfirmed, true},
		{"pending to rejected", OrderStatusPending, OrderStatusRejected, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to shipped skips confirmation", OrderStatusPending, OrderStatusShipped, false},
		{"confirmed to shipped", OrderStatusConfirmed, OrderStatusShipped, true},
		{"confirmed to cancelled", OrderStatusConfirmed, OrderStatusCancelled, true},
		{"confirmed back to pending", OrderStatusConfirmed, OrderStatusPending, false},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusConfirmed, false},
		{"rejected is terminal", OrderStatusRejected, OrderStatusConfirmed, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
