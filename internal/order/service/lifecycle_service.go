package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/infrastructure/mysql"
)

type CartRepository interface {
	LockByUser(ctx context.Context, q mysql.Querier, userID int) ([]domain.CartEntry, error)
	DeleteByUser(ctx context.Context, q mysql.Querier, userID int) (int64, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, q mysql.Querier, order domain.Order) (uint, error)
	LockByID(ctx context.Context, q mysql.Querier, id uint) (*domain.Order, error)
	Update(ctx context.Context, q mysql.Querier, order domain.Order) error
	Delete(ctx context.Context, id uint) error
}

type OrderItemRepository interface {
	InsertBatch(ctx context.Context, q mysql.Querier, orderID uint, items []domain.OrderItem) error
	ListByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error)
}

// OrderChange lists the mutable order fields to set; nil fields are kept.
type OrderChange struct {
	Status         *domain.OrderStatus
	DeliveryCrewID *int
}

// Guard inspects the locked order before a change is applied. q is the open
// transaction, so reads made through it see and lock the same snapshot. A
// non-nil error aborts the change.
type Guard func(ctx context.Context, q mysql.Querier, order domain.Order) error

type LifecycleService struct {
	db        mysql.Beginner
	cart      CartRepository
	orders    OrderRepository
	items     OrderItemRepository
	txTimeout time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func NewLifecycleService(
	db mysql.Beginner,
	cart CartRepository,
	orders OrderRepository,
	items OrderItemRepository,
	txTimeout time.Duration,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		db:        db,
		cart:      cart,
		orders:    orders,
		items:     items,
		txTimeout: txTimeout,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// PlaceOrder converts the user's cart into a pending order. Creating the
// order and its items and emptying the cart commit together or not at all.
func (s *LifecycleService) PlaceOrder(ctx context.Context, userID int) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	entries, err := s.cart.LockByUser(txCtx, tx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewEmptyCartError(userID)
	}

	order := domain.NewOrderFromCart(userID, entries, s.now())
	if err := order.ValidateTotal(); err != nil {
		return nil, err
	}

	order.ID, err = s.orders.Insert(txCtx, tx, *order)
	if err != nil {
		s.logger.Error("failed to insert order", zap.Int("userId", userID), zap.Error(err))
		return nil, err
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	if err := s.items.InsertBatch(txCtx, tx, order.ID, order.Items); err != nil {
		s.logger.Error("failed to insert order items", zap.Uint("orderId", order.ID), zap.Error(err))
		return nil, err
	}

	if _, err := s.cart.DeleteByUser(txCtx, tx, userID); err != nil {
		s.logger.Error("failed to clear cart", zap.Int("userId", userID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", order.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Uint("orderId", order.ID),
		zap.Int("userId", userID),
		zap.Int("itemCount", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)),
	)

	return order, nil
}

// UpdateOrder locks the order row, runs guard on the locked state, checks the
// status transition and writes the change.
func (s *LifecycleService) UpdateOrder(ctx context.Context, orderID uint, change OrderChange, guard Guard) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	order, err := s.orders.LockByID(txCtx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if guard != nil {
		if err := guard(txCtx, tx, *order); err != nil {
			return nil, err
		}
	}

	previous := order.Status
	if change.Status != nil {
		if err := order.Status.ValidateTransition(*change.Status); err != nil {
			return nil, err
		}
		order.Status = *change.Status
	}
	if change.DeliveryCrewID != nil {
		crewID := *change.DeliveryCrewID
		order.DeliveryCrewID = &crewID
	}
	order.UpdatedAt = s.now()

	if err := s.orders.Update(txCtx, tx, *order); err != nil {
		s.logger.Error("failed to update order", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	fields := []zap.Field{zap.Uint("orderId", orderID), zap.String("status", order.Status.String())}
	if previous != order.Status {
		fields = append(fields, zap.String("previousStatus", previous.String()))
	}
	if order.DeliveryCrewID != nil {
		fields = append(fields, zap.Int("deliveryCrewId", *order.DeliveryCrewID))
	}
	s.logger.Info("order updated", fields...)

	items, err := s.items.ListByOrderIDs(ctx, []uint{orderID})
	if err != nil {
		return nil, err
	}
	order.Items = items[orderID]

	return order, nil
}

func (s *LifecycleService) DeleteOrder(ctx context.Context, orderID uint) error {
	if err := s.orders.Delete(ctx, orderID); err != nil {
		return err
	}

	s.logger.Info("order deleted", zap.Uint("orderId", orderID))

	return nil
}
