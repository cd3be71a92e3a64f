package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/infrastructure/mysql"
)

const selectOrders = `
	SELECT id, userId, deliveryCrewId, status, total, createdAt, updatedAt
	FROM Orders
`

// OrderFilter narrows List. Nil fields do not filter.
type OrderFilter struct {
	UserID         *int
	DeliveryCrewID *int
}

type MySQLOrderRepository struct {
	db    *sql.DB
	items *MySQLOrderItemRepository
}

func NewMySQLOrderRepository(db *sql.DB, items *MySQLOrderItemRepository) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db, items: items}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, q mysql.Querier, order domain.Order) (uint, error) {
	query := `INSERT INTO Orders (userId, deliveryCrewId, status, total, createdAt, updatedAt) VALUES (?, ?, ?, ?, ?, ?)`

	result, err := q.ExecContext(ctx, query,
		order.UserID, order.DeliveryCrewID, int(order.Status), order.Total, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(id), nil
}

// FindByID returns the order with its items.
func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx, selectOrders+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	items, err := r.items.ListByOrderIDs(ctx, []uint{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return order, nil
}

// LockByID reads the order row with FOR UPDATE inside q. Items are not
// loaded.
func (r *MySQLOrderRepository) LockByID(ctx context.Context, q mysql.Querier, id uint) (*domain.Order, error) {
	order, err := scanOrder(q.QueryRowContext(ctx, selectOrders+` WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("locking order: %w", err)
	}

	return order, nil
}

// Update writes the mutable fields of an order: status and delivery crew.
func (r *MySQLOrderRepository) Update(ctx context.Context, q mysql.Querier, order domain.Order) error {
	query := `UPDATE Orders SET status = ?, deliveryCrewId = ?, updatedAt = ? WHERE id = ?`

	if _, err := q.ExecContext(ctx, query, int(order.Status), order.DeliveryCrewID, order.UpdatedAt, order.ID); err != nil {
		if mysql.IsMissingReference(err) {
			return apperrors.NewNotFoundError("delivery crew user not found")
		}
		return fmt.Errorf("updating order: %w", err)
	}

	return nil
}

// Delete removes the order; its items go with it through the foreign key.
func (r *MySQLOrderRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	var (
		conds []string
		args  []any
	)
	if filter.UserID != nil {
		conds = append(conds, "userId = ?")
		args = append(args, *filter.UserID)
	}
	if filter.DeliveryCrewID != nil {
		conds = append(conds, "deliveryCrewId = ?")
		args = append(args, *filter.DeliveryCrewID)
	}

	query := selectOrders
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	ids := []uint{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.items.ListByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o      domain.Order
		crewID sql.NullInt64
		status int
	)
	if err := row.Scan(&o.ID, &o.UserID, &crewID, &status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if crewID.Valid {
		id := int(crewID.Int64)
		o.DeliveryCrewID = &id
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}
