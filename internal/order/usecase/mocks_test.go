package usecase

import (
	"context"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/infrastructure/mysql"
	orderrepo "littlelemon/internal/order/repository"
	"littlelemon/internal/order/service"
)

type mockLifecycle struct {
	PlaceOrderFunc  func(ctx context.Context, userID int) (*domain.Order, error)
	UpdateOrderFunc func(ctx context.Context, orderID uint, change service.OrderChange, guard service.Guard) (*domain.Order, error)
	DeleteOrderFunc func(ctx context.Context, orderID uint) error
}

func (m *mockLifecycle) PlaceOrder(ctx context.Context, userID int) (*domain.Order, error) {
	return m.PlaceOrderFunc(ctx, userID)
}

func (m *mockLifecycle) UpdateOrder(ctx context.Context, orderID uint, change service.OrderChange, guard service.Guard) (*domain.Order, error) {
	return m.UpdateOrderFunc(ctx, orderID, change, guard)
}

func (m *mockLifecycle) DeleteOrder(ctx context.Context, orderID uint) error {
	return m.DeleteOrderFunc(ctx, orderID)
}

type mockOrderReader struct {
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Order, error)
	ListFunc     func(ctx context.Context, filter orderrepo.OrderFilter) ([]domain.Order, error)
}

func (m *mockOrderReader) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderReader) List(ctx context.Context, filter orderrepo.OrderFilter) ([]domain.Order, error) {
	return m.ListFunc(ctx, filter)
}

type mockCrewDirectory struct {
	HasRoleLockedFunc func(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error)
}

func (m *mockCrewDirectory) HasRoleLocked(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error) {
	return m.HasRoleLockedFunc(ctx, q, userID, role)
}

func crewDirectory(members ...int) *mockCrewDirectory {
	return &mockCrewDirectory{
		HasRoleLockedFunc: func(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error) {
			for _, m := range members {
				if m == userID {
					return role == domain.RoleDeliveryCrew, nil
				}
			}
			return false, nil
		},
	}
}

func unknownUserDirectory() *mockCrewDirectory {
	return &mockCrewDirectory{
		HasRoleLockedFunc: func(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error) {
			return false, apperrors.NewNotFoundError("user not found")
		},
	}
}
