package service

import (
	"context"
	"database/sql"
	"errors"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/infrastructure/mysql"
)

// memStore is an in-memory stand-in for the cart and order tables. Writes
// issued through a memTx are staged and only applied on Commit.
type memStore struct {
	carts     map[int][]domain.CartEntry
	orders    map[uint]domain.Order
	nextID    uint
	failItems error
	begun     int
	committed int
}

func newMemStore() *memStore {
	return &memStore{
		carts:  make(map[int][]domain.CartEntry),
		orders: make(map[uint]domain.Order),
		nextID: 1,
	}
}

func (s *memStore) BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error) {
	s.begun++
	return &memTx{store: s}, nil
}

type memTx struct {
	mysql.Querier
	store   *memStore
	pending []func()
	done    bool
}

func (t *memTx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	for _, op := range t.pending {
		op()
	}
	t.done = true
	t.store.committed++
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.pending = nil
	t.done = true
	return nil
}

func stage(q mysql.Querier, op func()) error {
	tx, ok := q.(*memTx)
	if !ok {
		return errors.New("write outside transaction")
	}
	tx.pending = append(tx.pending, op)
	return nil
}

type memCartRepository struct{ store *memStore }

func (r memCartRepository) LockByUser(ctx context.Context, q mysql.Querier, userID int) ([]domain.CartEntry, error) {
	return append([]domain.CartEntry(nil), r.store.carts[userID]...), nil
}

func (r memCartRepository) DeleteByUser(ctx context.Context, q mysql.Querier, userID int) (int64, error) {
	n := int64(len(r.store.carts[userID]))
	return n, stage(q, func() { delete(r.store.carts, userID) })
}

type memOrderRepository struct{ store *memStore }

func (r memOrderRepository) Insert(ctx context.Context, q mysql.Querier, order domain.Order) (uint, error) {
	id := r.store.nextID
	r.store.nextID++
	order.ID = id
	order.Items = nil
	return id, stage(q, func() { r.store.orders[id] = order })
}

func (r memOrderRepository) LockByID(ctx context.Context, q mysql.Querier, id uint) (*domain.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("order not found")
	}
	order.Items = nil
	return &order, nil
}

func (r memOrderRepository) Update(ctx context.Context, q mysql.Querier, order domain.Order) error {
	return stage(q, func() {
		current := r.store.orders[order.ID]
		current.Status = order.Status
		current.DeliveryCrewID = order.DeliveryCrewID
		current.UpdatedAt = order.UpdatedAt
		r.store.orders[order.ID] = current
	})
}

func (r memOrderRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := r.store.orders[id]; !ok {
		return apperrors.NewNotFoundError("order not found")
	}
	delete(r.store.orders, id)
	return nil
}

type memOrderItemRepository struct{ store *memStore }

func (r memOrderItemRepository) InsertBatch(ctx context.Context, q mysql.Querier, orderID uint, items []domain.OrderItem) error {
	if r.store.failItems != nil {
		return r.store.failItems
	}
	snapshot := append([]domain.OrderItem(nil), items...)
	return stage(q, func() {
		order := r.store.orders[orderID]
		order.Items = snapshot
		r.store.orders[orderID] = order
	})
}

func (r memOrderItemRepository) ListByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error) {
	result := make(map[uint][]domain.OrderItem, len(orderIDs))
	for _, id := range orderIDs {
		if order, ok := r.store.orders[id]; ok {
			result[id] = append([]domain.OrderItem(nil), order.Items...)
		}
	}
	return result, nil
}
