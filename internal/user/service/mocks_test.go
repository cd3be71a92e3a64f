package service

import (
	"context"
	"database/sql"

	"littlelemon/internal/domain"
	"littlelemon/internal/infrastructure/mysql"
)

type mockUserRepository struct {
	CreateFunc   func(ctx context.Context, q mysql.Querier, user domain.User) (int, error)
	FindByIDFunc func(ctx context.Context, id int) (*domain.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, q mysql.Querier, user domain.User) (int, error) {
	return m.CreateFunc(ctx, q, user)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockGroupRepository struct {
	AddMemberFunc     func(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error)
	RemoveMemberFunc  func(ctx context.Context, userID int, role domain.Role) (bool, error)
	ListMembersFunc   func(ctx context.Context, role domain.Role) ([]domain.User, error)
	RolesOfFunc       func(ctx context.Context, userID int) ([]domain.Role, error)
	HasRoleLockedFunc func(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error)
}

func (m *mockGroupRepository) AddMember(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error) {
	return m.AddMemberFunc(ctx, q, userID, role)
}

func (m *mockGroupRepository) RemoveMember(ctx context.Context, userID int, role domain.Role) (bool, error) {
	return m.RemoveMemberFunc(ctx, userID, role)
}

func (m *mockGroupRepository) ListMembers(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return m.ListMembersFunc(ctx, role)
}

func (m *mockGroupRepository) RolesOf(ctx context.Context, userID int) ([]domain.Role, error) {
	return m.RolesOfFunc(ctx, userID)
}

func (m *mockGroupRepository) HasRoleLocked(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error) {
	return m.HasRoleLockedFunc(ctx, q, userID, role)
}

type fakeTx struct {
	mysql.Querier
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback() error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeBeginner struct {
	tx *fakeTx
}

func (f *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error) {
	f.tx = &fakeTx{}
	return f.tx, nil
}
