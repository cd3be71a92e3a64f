package usecase

import (
	"context"

	"go.uber.org/zap"

	"littlelemon/internal/authz"
	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/identity"
	"littlelemon/internal/infrastructure/mysql"
	orderrepo "littlelemon/internal/order/repository"
	"littlelemon/internal/order/service"
)

type Lifecycle interface {
	PlaceOrder(ctx context.Context, userID int) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID uint, change service.OrderChange, guard service.Guard) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID uint) error
}

type OrderReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	List(ctx context.Context, filter orderrepo.OrderFilter) ([]domain.Order, error)
}

// CrewDirectory checks memberships inside an open transaction. The read
// locks the membership row so it cannot be removed before the transaction ends.
type CrewDirectory interface {
	HasRoleLocked(ctx context.Context, q mysql.Querier, userID int, role domain.Role) (bool, error)
}

// UpdateRequest is a partial order update. Status is the wire name of the
// target status.
type UpdateRequest struct {
	Status         *string
	DeliveryCrewID *int
}

type OrderUseCase struct {
	lifecycle Lifecycle
	orders    OrderReader
	crew      CrewDirectory
	logger    *zap.Logger
}

func NewOrderUseCase(lifecycle Lifecycle, orders OrderReader, crew CrewDirectory, logger *zap.Logger) *OrderUseCase {
	return &OrderUseCase{
		lifecycle: lifecycle,
		orders:    orders,
		crew:      crew,
		logger:    logger,
	}
}

func (uc *OrderUseCase) PlaceOrder(ctx context.Context, caller identity.Caller) (*domain.Order, error) {
	if err := caller.Authorize(authz.ResourceOrder, authz.ActionCreate, true); err != nil {
		return nil, err
	}

	order, err := uc.lifecycle.PlaceOrder(ctx, caller.UserID)
	if err != nil {
		return nil, translate(err)
	}
	return order, nil
}

// ListOrdersFor returns the orders visible to the caller: a customer sees the
// orders they placed, a delivery crew member the orders assigned to them and
// a manager every order.
func (uc *OrderUseCase) ListOrdersFor(ctx context.Context, caller identity.Caller) ([]domain.Order, error) {
	if err := caller.Authorize(authz.ResourceOrder, authz.ActionList, true); err != nil {
		return nil, err
	}

	var filter orderrepo.OrderFilter
	switch caller.Role {
	case domain.RoleManager:
	case domain.RoleDeliveryCrew:
		filter.DeliveryCrewID = &caller.UserID
	default:
		filter.UserID = &caller.UserID
	}

	return uc.orders.List(ctx, filter)
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, caller identity.Caller, orderID uint) (*domain.Order, error) {
	if !caller.Authenticated() {
		return nil, caller.Authorize(authz.ResourceOrder, authz.ActionRead, false)
	}

	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Orders the caller may not read are reported as missing.
	if err := caller.Authorize(authz.ResourceOrder, authz.ActionRead, owns(caller, *order)); err != nil {
		if _, ok := apperrors.IsForbiddenError(err); ok {
			return nil, apperrors.NewNotFoundError("order not found")
		}
		return nil, err
	}
	return order, nil
}

// Update applies a partial update. Managers may set the status and the
// delivery crew; a delivery crew member may only move the status of an order
// assigned to them.
func (uc *OrderUseCase) Update(ctx context.Context, caller identity.Caller, orderID uint, req UpdateRequest) (*domain.Order, error) {
	if err := caller.Authorize(authz.ResourceOrder, authz.ActionUpdateStatus, true); err != nil {
		return nil, err
	}
	if req.DeliveryCrewID != nil {
		if err := caller.Authorize(authz.ResourceOrder, authz.ActionAssign, true); err != nil {
			return nil, err
		}
	}

	change, err := buildChange(req)
	if err != nil {
		return nil, err
	}

	guard := func(ctx context.Context, q mysql.Querier, order domain.Order) error {
		if err := caller.Authorize(authz.ResourceOrder, authz.ActionUpdateStatus, order.IsAssignedTo(caller.UserID)); err != nil {
			return err
		}
		if change.DeliveryCrewID == nil {
			return nil
		}
		return uc.checkCrew(ctx, q, *change.DeliveryCrewID)
	}

	order, err := uc.lifecycle.UpdateOrder(ctx, orderID, change, guard)
	if err != nil {
		return nil, translate(err)
	}
	return order, nil
}

// AssignDeliveryCrew sets the delivery crew member of an order.
func (uc *OrderUseCase) AssignDeliveryCrew(ctx context.Context, caller identity.Caller, orderID uint, crewID int) (*domain.Order, error) {
	return uc.Update(ctx, caller, orderID, UpdateRequest{DeliveryCrewID: &crewID})
}

func (uc *OrderUseCase) SetStatus(ctx context.Context, caller identity.Caller, orderID uint, status string) (*domain.Order, error) {
	return uc.Update(ctx, caller, orderID, UpdateRequest{Status: &status})
}

func (uc *OrderUseCase) DeleteOrder(ctx context.Context, caller identity.Caller, orderID uint) error {
	if err := caller.Authorize(authz.ResourceOrder, authz.ActionDelete, true); err != nil {
		return err
	}
	return uc.lifecycle.DeleteOrder(ctx, orderID)
}

func buildChange(req UpdateRequest) (service.OrderChange, error) {
	var change service.OrderChange

	if req.Status == nil && req.DeliveryCrewID == nil {
		return change, apperrors.NewValidationError("no fields to update", apperrors.ValidationDetail{
			Field:   "status",
			Message: "provide status or deliveryCrewId",
		})
	}

	if req.Status != nil {
		status, err := domain.ParseOrderStatus(*req.Status)
		if err != nil {
			return change, err
		}
		change.Status = &status
	}

	if req.DeliveryCrewID != nil {
		crewID := *req.DeliveryCrewID
		if crewID <= 0 {
			return change, apperrors.NewNotDeliveryCrewRoleError(crewID)
		}
		change.DeliveryCrewID = &crewID
	}

	return change, nil
}

// checkCrew fails with NotDeliveryCrewRoleError unless userID currently
// belongs to the delivery crew. Unknown users fail the same way.
func (uc *OrderUseCase) checkCrew(ctx context.Context, q mysql.Querier, userID int) error {
	isCrew, err := uc.crew.HasRoleLocked(ctx, q, userID, domain.RoleDeliveryCrew)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return apperrors.NewNotDeliveryCrewRoleError(userID)
		}
		return err
	}
	if !isCrew {
		return apperrors.NewNotDeliveryCrewRoleError(userID)
	}
	return nil
}

func owns(caller identity.Caller, order domain.Order) bool {
	switch caller.Role {
	case domain.RoleDeliveryCrew:
		return order.IsAssignedTo(caller.UserID)
	default:
		return order.UserID == caller.UserID
	}
}

func translate(err error) error {
	if mysql.IsDeadlock(err) {
		return apperrors.NewDeadlockError("order is being modified concurrently, retry the request", err)
	}
	return err
}
