package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "littlelemon/internal/errors"
)

func TestOrderStatus_Strings(t *testing.T) {
	assert.Equal(t, "pending", OrderStatusPending.String())
	assert.Equal(t, "out_for_delivery", OrderStatusOutForDelivery.String())
	assert.Equal(t, "delivered", OrderStatusDelivered.String())
	assert.Equal(t, "unknown(7)", OrderStatus(7).String())
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OrderStatus
		wantErr bool
	}{
		{name: "pending", input: "pending", want: OrderStatusPending},
		{name: "out for delivery", input: "out_for_delivery", want: OrderStatusOutForDelivery},
		{name: "delivered", input: "delivered", want: OrderStatusDelivered},
		{name: "numeric is rejected", input: "1", wantErr: true},
		{name: "boolean is rejected", input: "true", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.input)
			if tt.wantErr {
				ve, ok := apperrors.IsValidationError(err)
				require.True(t, ok)
				assert.Equal(t, "status", ve.Details[0].Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderStatus_ValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{name: "pending to out for delivery", from: OrderStatusPending, to: OrderStatusOutForDelivery, allowed: true},
		{name: "out for delivery to delivered", from: OrderStatusOutForDelivery, to: OrderStatusDelivered, allowed: true},
		{name: "same state is a no-op", from: OrderStatusOutForDelivery, to: OrderStatusOutForDelivery, allowed: true},
		{name: "skip pending to delivered", from: OrderStatusPending, to: OrderStatusDelivered, allowed: false},
		{name: "backward delivered to pending", from: OrderStatusDelivered, to: OrderStatusPending, allowed: false},
		{name: "backward out for delivery to pending", from: OrderStatusOutForDelivery, to: OrderStatusPending, allowed: false},
		{name: "past terminal", from: OrderStatusDelivered, to: OrderStatus(3), allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.from.ValidateTransition(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			ite, ok := apperrors.IsInvalidTransitionError(err)
			require.True(t, ok)
			assert.Equal(t, tt.from.String(), ite.From)
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusOutForDelivery.IsTerminal())
	assert.True(t, OrderStatusDelivered.IsTerminal())
}

func TestNewOrderFromCart(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []CartEntry{
		{UserID: 3, MenuItemID: 1, MenuItemTitle: "Greek Salad", Quantity: 2, Price: decimal.RequireFromString("5.00")},
		{UserID: 3, MenuItemID: 2, MenuItemTitle: "Bruschetta", Quantity: 1, Price: decimal.RequireFromString("3.00")},
	}

	order := NewOrderFromCart(3, entries, now)

	assert.Equal(t, 3, order.UserID)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Nil(t, order.DeliveryCrewID)
	assert.True(t, decimal.RequireFromString("13.00").Equal(order.Total))
	assert.Equal(t, now, order.CreatedAt)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 1, order.Items[0].MenuItemID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("5.00").Equal(order.Items[0].Price))
	assert.Equal(t, 2, order.Items[1].MenuItemID)
	assert.Equal(t, 1, order.Items[1].Quantity)
}

func TestOrder_IsAssignedTo(t *testing.T) {
	crew := 8
	order := Order{ID: 1, UserID: 3, DeliveryCrewID: &crew}

	assert.True(t, order.IsAssignedTo(8))
	assert.False(t, order.IsAssignedTo(3))
	assert.False(t, Order{ID: 2}.IsAssignedTo(8))
}

func TestOrder_ValidateTotal(t *testing.T) {
	assert.NoError(t, Order{Total: MaxOrderTotal}.ValidateTotal())

	err := Order{Total: MaxOrderTotal.Add(decimal.RequireFromString("0.01"))}.ValidateTotal()
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "total", ve.Details[0].Field)
}
