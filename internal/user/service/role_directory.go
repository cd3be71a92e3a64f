package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"littlelemon/internal/domain"
	"littlelemon/internal/infrastructure/mysql"
)

type UserRepository interface {
	Create(ctx context.Context, q mysql.Querier, user domain.User) (int, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type GroupRepository interface {
	AddMember(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error)
	RemoveMember(ctx context.Context, userID int, role domain.Role) (bool, error)
	ListMembers(ctx context.Context, role domain.Role) ([]domain.User, error)
	RolesOf(ctx context.Context, userID int) ([]domain.Role, error)
	HasRoleLocked(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error)
}

// Confirmation describes the outcome of a membership change. Changed is false
// when the call was a no-op (already a member, or not a member on removal).
type Confirmation struct {
	UserID   int
	Username string
	Role     domain.Role
	Changed  bool
	Message  string
}

// RoleDirectory maps users to their roles. Memberships are stored as a set,
// so a user may hold more than one; ResolveRole reduces them to the single
// role used for authorization.
type RoleDirectory struct {
	db     mysql.Querier
	users  UserRepository
	groups GroupRepository
	logger *zap.Logger
}

func NewRoleDirectory(db mysql.Querier, users UserRepository, groups GroupRepository, logger *zap.Logger) *RoleDirectory {
	return &RoleDirectory{
		db:     db,
		users:  users,
		groups: groups,
		logger: logger,
	}
}

// HasRoleLocked checks membership inside the caller's transaction q. Unknown
// users hold no roles.
func (d *RoleDirectory) HasRoleLocked(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error) {
	return d.groups.HasRoleLocked(ctx, q, userID, role)
}

func (d *RoleDirectory) AddMember(ctx context.Context, role domain.Role, userID int) (*Confirmation, error) {
	user, err := d.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	added, err := d.groups.AddMember(ctx, d.db, userID, role)
	if err != nil {
		return nil, err
	}

	if added {
		d.logger.Info("group member added", zap.Int("userId", userID), zap.String("role", role.String()))
	}

	return &Confirmation{
		UserID:   user.ID,
		Username: user.Username,
		Role:     role,
		Changed:  added,
		Message:  fmt.Sprintf("User %s added to group %s.", user.Username, role),
	}, nil
}

func (d *RoleDirectory) RemoveMember(ctx context.Context, role domain.Role, userID int) (*Confirmation, error) {
	user, err := d.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	removed, err := d.groups.RemoveMember(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	if removed {
		d.logger.Info("group member removed", zap.Int("userId", userID), zap.String("role", role.String()))
	}

	return &Confirmation{
		UserID:   user.ID,
		Username: user.Username,
		Role:     role,
		Changed:  removed,
		Message:  fmt.Sprintf("User %s removed from group %s.", user.Username, role),
	}, nil
}

func (d *RoleDirectory) ListMembers(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return d.groups.ListMembers(ctx, role)
}

// ResolveRole returns the effective role of userID, RoleNone when the user
// belongs to no group.
func (d *RoleDirectory) ResolveRole(ctx context.Context, userID int) (domain.Role, error) {
	roles, err := d.groups.RolesOf(ctx, userID)
	if err != nil {
		return domain.RoleNone, err
	}
	return domain.EffectiveRole(roles), nil
}
