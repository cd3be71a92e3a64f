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

// MySQLGroupRepository stores role memberships in UserGroups, one row per
// (user, role).
type MySQLGroupRepository struct {
	db *sql.DB
}

func NewMySQLGroupRepository(db *sql.DB) *MySQLGroupRepository {
	return &MySQLGroupRepository{db: db}
}

// AddMember reports whether a row was inserted; an existing membership is
// left as is.
func (r *MySQLGroupRepository) AddMember(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error) {
	query := `INSERT IGNORE INTO UserGroups (userId, groupName) VALUES (?, ?)`

	result, err := q.ExecContext(ctx, query, userID, string(role))
	if err != nil {
		if mysql.IsMissingReference(err) {
			return false, apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", userID))
		}
		return false, fmt.Errorf("inserting group membership: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLGroupRepository) RemoveMember(ctx context.Context, userID int, role domain.Role) (bool, error) {
	query := `DELETE FROM UserGroups WHERE userId = ? AND groupName = ?`

	result, err := r.db.ExecContext(ctx, query, userID, string(role))
	if err != nil {
		return false, fmt.Errorf("deleting group membership: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLGroupRepository) ListMembers(ctx context.Context, role domain.Role) ([]domain.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.passwordHash, u.createdAt
		FROM Users u
		JOIN UserGroups g ON g.userId = u.id
		WHERE g.groupName = ?
		ORDER BY u.id
	`

	rows, err := r.db.QueryContext(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("querying group members: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning group member: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating group members: %w", err)
	}

	return users, nil
}

func (r *MySQLGroupRepository) RolesOf(ctx context.Context, userID int) ([]domain.Role, error) {
	query := `SELECT groupName FROM UserGroups WHERE userId = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user groups: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning user group: %w", err)
		}
		roles = append(roles, domain.Role(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user groups: %w", err)
	}

	return roles, nil
}

// HasRoleLocked reads the membership row through q with a shared lock, so a
// concurrent RemoveMember blocks until q's transaction ends.
func (r *MySQLGroupRepository) HasRoleLocked(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error) {
	query := `SELECT userId FROM UserGroups WHERE userId = ? AND groupName = ? LOCK IN SHARE MODE`

	var id int
	if err := q.QueryRowContext(ctx, query, userID, string(role)).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking group membership: %w", err)
	}

	return true, nil
}
