package repository

import (
	"context"
	"database/sql"
	"fmt"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/infrastructure/mysql"
)

type MySQLCategoryRepository struct {
	db *sql.DB
}

func NewMySQLCategoryRepository(db *sql.DB) *MySQLCategoryRepository {
	return &MySQLCategoryRepository{db: db}
}

func (r *MySQLCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, slug, title FROM Categories ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (r *MySQLCategoryRepository) Create(ctx context.Context, category domain.Category) (int, error) {
	query := `INSERT INTO Categories (slug, title) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, category.Slug, category.Title)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewConflictError(fmt.Sprintf("category %q already exists", category.Slug))
		}
		return 0, fmt.Errorf("inserting category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(id), nil
}
