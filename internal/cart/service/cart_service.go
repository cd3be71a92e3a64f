package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
)

type CartRepository interface {
	Upsert(ctx context.Context, userID, menuItemID, quantity, maxQuantity int, price decimal.Decimal) (bool, error)
	FindEntry(ctx context.Context, userID, menuItemID int) (*domain.CartEntry, error)
	ListByUser(ctx context.Context, userID int) ([]domain.CartEntry, error)
	Clear(ctx context.Context, userID int) (int64, error)
}

type MenuItemFinder interface {
	FindByID(ctx context.Context, id int) (*domain.MenuItem, error)
}

type CartService struct {
	cart        CartRepository
	menu        MenuItemFinder
	maxQuantity int
	logger      *zap.Logger
}

func NewCartService(cart CartRepository, menu MenuItemFinder, maxQuantity int, logger *zap.Logger) *CartService {
	return &CartService{
		cart:        cart,
		menu:        menu,
		maxQuantity: maxQuantity,
		logger:      logger,
	}
}

// AddItem puts quantity units of the menu item in the user's cart. A first
// add snapshots the current menu price; later adds only raise the quantity.
func (s *CartService) AddItem(ctx context.Context, userID, menuItemID, quantity int) (*domain.CartEntry, error) {
	if quantity < 1 || quantity > s.maxQuantity {
		return nil, apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be between 1 and %d", s.maxQuantity),
		})
	}

	item, err := s.menu.FindByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	applied, err := s.cart.Upsert(ctx, userID, item.ID, quantity, s.maxQuantity, item.Price)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: fmt.Sprintf("cart quantity for menu item %d must not exceed %d", item.ID, s.maxQuantity),
		})
	}

	entry, err := s.cart.FindEntry(ctx, userID, item.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("cart item added", zap.Int("userId", userID), zap.Int("menuItemId", item.ID), zap.Int("quantity", entry.Quantity))

	return entry, nil
}

func (s *CartService) ListItems(ctx context.Context, userID int) ([]domain.CartEntry, error) {
	return s.cart.ListByUser(ctx, userID)
}

// Clear returns the number of removed entries; an empty cart yields 0.
func (s *CartService) Clear(ctx context.Context, userID int) (int64, error) {
	n, err := s.cart.Clear(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("cart cleared", zap.Int("userId", userID), zap.Int64("deleted", n))

	return n, nil
}
