package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/infrastructure/mysql"
)

type MySQLMenuItemRepository struct {
	db *sql.DB
}

func NewMySQLMenuItemRepository(db *sql.DB) *MySQLMenuItemRepository {
	return &MySQLMenuItemRepository{db: db}
}

func (r *MySQLMenuItemRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	query := `SELECT id, title, price, featured, categoryId FROM MenuItems ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Title, &m.Price, &m.Featured, &m.CategoryID); err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}

	return items, nil
}

func (r *MySQLMenuItemRepository) FindByID(ctx context.Context, id int) (*domain.MenuItem, error) {
	query := `SELECT id, title, price, featured, categoryId FROM MenuItems WHERE id = ?`

	var m domain.MenuItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Title, &m.Price, &m.Featured, &m.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu item by id: %w", err)
	}

	return &m, nil
}

func (r *MySQLMenuItemRepository) Create(ctx context.Context, item domain.MenuItem) (int, error) {
	query := `INSERT INTO MenuItems (title, price, featured, categoryId) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, item.Title, item.Price, item.Featured, item.CategoryID)
	if err != nil {
		return 0, translateWriteError(err, item.CategoryID, "inserting menu item")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(id), nil
}

func (r *MySQLMenuItemRepository) Update(ctx context.Context, item domain.MenuItem) error {
	query := `UPDATE MenuItems SET title = ?, price = ?, featured = ?, categoryId = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, item.Title, item.Price, item.Featured, item.CategoryID, item.ID); err != nil {
		return translateWriteError(err, item.CategoryID, "updating menu item")
	}

	return nil
}

// Delete fails with ConflictError while an order item still references the
// menu item.
func (r *MySQLMenuItemRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM MenuItems WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if mysql.IsRowReferenced(err) {
			return apperrors.NewConflictError(fmt.Sprintf("menu item %d is referenced by existing orders", id))
		}
		return fmt.Errorf("deleting menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", id))
	}

	return nil
}

func translateWriteError(err error, categoryID int, op string) error {
	if mysql.IsMissingReference(err) {
		return apperrors.NewValidationError("invalid category", apperrors.ValidationDetail{
			Field:   "category",
			Message: fmt.Sprintf("category %d does not exist", categoryID),
		})
	}
	return fmt.Errorf("%s: %w", op, err)
}
