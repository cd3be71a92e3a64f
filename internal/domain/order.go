package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "littlelemon/internal/errors"
)

type Order struct {
	ID             uint
	UserID         int
	DeliveryCrewID *int
	Status         OrderStatus
	Total          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []OrderItem
}

// OrderItem is immutable once created; Price is the unit price snapshot
// taken from the cart entry the item was converted from.
type OrderItem struct {
	ID            uint
	OrderID       uint
	MenuItemID    int
	MenuItemTitle string
	Quantity      int
	Price         decimal.Decimal
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderStatus is the lifecycle state of an order:
//
//	Pending -> OutForDelivery -> Delivered
//
// Delivered is terminal. The numeric values are what is persisted.
type OrderStatus int

const (
	OrderStatusPending OrderStatus = iota
	OrderStatusOutForDelivery
	OrderStatusDelivered
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusPending:        "pending",
	OrderStatusOutForDelivery: "out_for_delivery",
	OrderStatusDelivered:      "delivered",
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusNames[s]
	return ok
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// ParseOrderStatus maps a wire name to a status. Anything outside the closed
// set is a validation error.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for status, name := range orderStatusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
		Field:   "status",
		Message: "status must be one of pending, out_for_delivery, delivered",
	})
}

// ValidateTransition allows staying in the same state or moving exactly one
// step forward. Backward moves and skips are rejected.
func (s OrderStatus) ValidateTransition(next OrderStatus) error {
	if !next.Valid() {
		return apperrors.NewInvalidTransitionError(s.String(), next.String())
	}
	if next == s || next == s+1 {
		return nil
	}
	return apperrors.NewInvalidTransitionError(s.String(), next.String())
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// NewOrderFromCart builds a pending order whose items mirror the cart
// entries and whose total is the sum of price times quantity.
func NewOrderFromCart(userID int, entries []CartEntry, now time.Time) *Order {
	order := &Order{
		UserID:    userID,
		Status:    OrderStatusPending,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
		Items:     make([]OrderItem, 0, len(entries)),
	}

	for _, entry := range entries {
		order.Items = append(order.Items, OrderItem{
			MenuItemID:    entry.MenuItemID,
			MenuItemTitle: entry.MenuItemTitle,
			Quantity:      entry.Quantity,
			Price:         entry.Price,
		})
		order.Total = order.Total.Add(entry.LineTotal())
	}

	return order
}

// MaxOrderTotal is the largest total the Orders.total column can hold.
var MaxOrderTotal = decimal.RequireFromString("999999999999.99")

// ValidateTotal rejects orders whose total cannot be stored.
func (o Order) ValidateTotal() error {
	if o.Total.GreaterThan(MaxOrderTotal) {
		return apperrors.NewValidationError("order total too large", apperrors.ValidationDetail{
			Field:   "total",
			Message: "order total must not exceed " + MaxOrderTotal.StringFixed(2),
		})
	}
	return nil
}

// IsAssignedTo reports whether userID is the delivery crew member of the order.
func (o Order) IsAssignedTo(userID int) bool {
	return o.DeliveryCrewID != nil && *o.DeliveryCrewID == userID
}
