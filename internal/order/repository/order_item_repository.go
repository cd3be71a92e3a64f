package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"littlelemon/internal/domain"
	"littlelemon/internal/infrastructure/mysql"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

// InsertBatch writes all items of an order in a single statement.
func (r *MySQLOrderItemRepository) InsertBatch(ctx context.Context, q mysql.Querier, orderID uint, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	placeholders := make([]string, len(items))
	args := make([]any, 0, len(items)*4)
	for i, item := range items {
		placeholders[i] = "(?, ?, ?, ?)"
		args = append(args, orderID, item.MenuItemID, item.Quantity, item.Price)
	}

	query := `INSERT INTO OrderItems (orderId, menuItemId, quantity, price) VALUES ` + strings.Join(placeholders, ", ")

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting order items: %w", err)
	}

	return nil
}

func (r *MySQLOrderItemRepository) ListByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error) {
	result := make(map[uint][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(orderIDs))
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `
		SELECT oi.id, oi.orderId, oi.menuItemId, m.title, oi.quantity, oi.price
		FROM OrderItems oi
		JOIN MenuItems m ON m.id = oi.menuItemId
		WHERE oi.orderId IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY oi.orderId, oi.id
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.MenuItemTitle, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return result, nil
}
