package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "littlelemon/internal/errors"
)

// MySQLTokenRepository stores auth tokens by their SHA-256 hash; the raw
// token never reaches the database.
type MySQLTokenRepository struct {
	db *sql.DB
}

func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}

func (r *MySQLTokenRepository) Insert(ctx context.Context, tokenHash string, userID int) error {
	query := `INSERT INTO AuthTokens (tokenHash, userId) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, tokenHash, userID); err != nil {
		return fmt.Errorf("inserting auth token: %w", err)
	}

	return nil
}

func (r *MySQLTokenRepository) FindUserID(ctx context.Context, tokenHash string) (int, error) {
	query := `SELECT userId FROM AuthTokens WHERE tokenHash = ?`

	var userID int
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperrors.NewNotFoundError("token not found")
	}
	if err != nil {
		return 0, fmt.Errorf("querying auth token: %w", err)
	}

	return userID, nil
}

func (r *MySQLTokenRepository) Delete(ctx context.Context, tokenHash string) (int64, error) {
	query := `DELETE FROM AuthTokens WHERE tokenHash = ?`

	result, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return 0, fmt.Errorf("deleting auth token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected, nil
}
