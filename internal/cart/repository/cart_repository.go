package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/infrastructure/mysql"
)

const selectEntries = `
	SELECT c.id, c.userId, c.menuItemId, m.title, c.quantity, c.price
	FROM Cart c
	JOIN MenuItems m ON m.id = c.menuItemId
`

type MySQLCartRepository struct {
	db *sql.DB
}

func NewMySQLCartRepository(db *sql.DB) *MySQLCartRepository {
	return &MySQLCartRepository{db: db}
}

// Upsert adds quantity to the (user, menu item) entry, creating it with the
// given unit price when absent. The price of an existing entry is kept. The
// merge is skipped when the resulting quantity would exceed maxQuantity, and
// applied is false in that case.
func (r *MySQLCartRepository) Upsert(ctx context.Context, userID, menuItemID, quantity, maxQuantity int, price decimal.Decimal) (bool, error) {
	query := `
		INSERT INTO Cart (userId, menuItemId, quantity, price)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = IF(quantity + ? <= ?, quantity + ?, quantity)
	`

	result, err := r.db.ExecContext(ctx, query, userID, menuItemID, quantity, price, quantity, maxQuantity, quantity)
	if err != nil {
		if mysql.IsMissingReference(err) {
			return false, apperrors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", menuItemID))
		}
		return false, fmt.Errorf("upserting cart entry: %w", err)
	}

	// 1 for an insert, 2 for a merge, 0 when the row was left unchanged.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLCartRepository) FindEntry(ctx context.Context, userID, menuItemID int) (*domain.CartEntry, error) {
	query := selectEntries + ` WHERE c.userId = ? AND c.menuItemId = ?`

	var e domain.CartEntry
	err := r.db.QueryRowContext(ctx, query, userID, menuItemID).Scan(
		&e.ID, &e.UserID, &e.MenuItemID, &e.MenuItemTitle, &e.Quantity, &e.Price,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("cart entry not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying cart entry: %w", err)
	}

	return &e, nil
}

func (r *MySQLCartRepository) ListByUser(ctx context.Context, userID int) ([]domain.CartEntry, error) {
	return r.list(ctx, r.db, selectEntries+` WHERE c.userId = ? ORDER BY c.id`, userID)
}

// LockByUser reads the user's entries with FOR UPDATE so a concurrent add
// for the same user waits until q commits.
func (r *MySQLCartRepository) LockByUser(ctx context.Context, q mysql.Querier, userID int) ([]domain.CartEntry, error) {
	return r.list(ctx, q, selectEntries+` WHERE c.userId = ? ORDER BY c.id FOR UPDATE`, userID)
}

func (r *MySQLCartRepository) DeleteByUser(ctx context.Context, q mysql.Querier, userID int) (int64, error) {
	query := `DELETE FROM Cart WHERE userId = ?`

	result, err := q.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting cart entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected, nil
}

// Clear empties the user's cart outside of any transaction.
func (r *MySQLCartRepository) Clear(ctx context.Context, userID int) (int64, error) {
	return r.DeleteByUser(ctx, r.db, userID)
}

func (r *MySQLCartRepository) list(ctx context.Context, q mysql.Querier, query string, args ...any) ([]domain.CartEntry, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cart entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.CartEntry{}
	for rows.Next() {
		var e domain.CartEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.MenuItemID, &e.MenuItemTitle, &e.Quantity, &e.Price); err != nil {
			return nil, fmt.Errorf("scanning cart entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cart entries: %w", err)
	}

	return entries, nil
}
