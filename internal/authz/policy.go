// Package authz decides whether a caller may perform an action on a
// resource. Decide is a pure function of its input: it performs no lookups,
// so callers resolve the role and the ownership relation beforehand.
package authz

import (
	"fmt"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
)

type Resource string

const (
	ResourceMenuItem        Resource = "menu_item"
	ResourceCategory        Resource = "category"
	ResourceCart            Resource = "cart"
	ResourceOrder           Resource = "order"
	ResourceGroupMembership Resource = "group_membership"
)

type Action string

const (
	ActionList         Action = "list"
	ActionRead         Action = "read"
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionUpdateStatus Action = "update_status"
	ActionAssign       Action = "assign"
	ActionDelete       Action = "delete"
)

// Input describes one authorization question. Owns carries the ownership
// relation relevant to the resource: for a cart, that the cart is the
// caller's; for an order, that the caller placed it (customer) or is its
// assigned delivery crew member (delivery crew).
type Input struct {
	Authenticated bool
	Role          domain.Role
	Resource      Resource
	Action        Action
	Owns          bool
}

type Outcome int

const (
	Allow Outcome = iota
	DenyUnauthenticated
	DenyForbidden
)

type Decision struct {
	Outcome Outcome
	Reason  string
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

// Err converts a denial into the matching typed error, nil when allowed.
func (d Decision) Err() error {
	switch d.Outcome {
	case Allow:
		return nil
	case DenyUnauthenticated:
		return apperrors.NewUnauthenticatedError(d.Reason)
	default:
		return apperrors.NewForbiddenError(d.Reason)
	}
}

type grant struct {
	role      domain.Role
	ownedOnly bool
}

type rule struct {
	resource Resource
	action   Action
}

var (
	anyStaffOrCustomer = []grant{{role: domain.RoleCustomer}, {role: domain.RoleManager}, {role: domain.RoleDeliveryCrew}}
	managerOnly        = []grant{{role: domain.RoleManager}}
	ownCustomer        = []grant{{role: domain.RoleCustomer, ownedOnly: true}}
)

var policy = map[rule][]grant{
	{ResourceMenuItem, ActionList}:   anyStaffOrCustomer,
	{ResourceMenuItem, ActionRead}:   anyStaffOrCustomer,
	{ResourceMenuItem, ActionCreate}: managerOnly,
	{ResourceMenuItem, ActionUpdate}: managerOnly,
	{ResourceMenuItem, ActionDelete}: managerOnly,

	{ResourceCategory, ActionList}:   anyStaffOrCustomer,
	{ResourceCategory, ActionCreate}: managerOnly,

	{ResourceCart, ActionRead}:   ownCustomer,
	{ResourceCart, ActionCreate}: ownCustomer,
	{ResourceCart, ActionDelete}: ownCustomer,

	{ResourceOrder, ActionList}: anyStaffOrCustomer,
	{ResourceOrder, ActionRead}: {
		{role: domain.RoleCustomer, ownedOnly: true},
		{role: domain.RoleDeliveryCrew, ownedOnly: true},
		{role: domain.RoleManager},
	},
	{ResourceOrder, ActionCreate}: {{role: domain.RoleCustomer}},
	{ResourceOrder, ActionUpdate}: managerOnly,
	{ResourceOrder, ActionUpdateStatus}: {
		{role: domain.RoleManager},
		{role: domain.RoleDeliveryCrew, ownedOnly: true},
	},
	{ResourceOrder, ActionAssign}: managerOnly,
	{ResourceOrder, ActionDelete}: managerOnly,

	{ResourceGroupMembership, ActionList}:   managerOnly,
	{ResourceGroupMembership, ActionRead}:   managerOnly,
	{ResourceGroupMembership, ActionCreate}: managerOnly,
	{ResourceGroupMembership, ActionDelete}: managerOnly,
}

func Decide(in Input) Decision {
	if !in.Authenticated {
		return Decision{Outcome: DenyUnauthenticated, Reason: "authentication credentials were not provided"}
	}

	grants, ok := policy[rule{in.Resource, in.Action}]
	if !ok {
		return Decision{Outcome: DenyForbidden, Reason: fmt.Sprintf("action %s is not defined on %s", in.Action, in.Resource)}
	}

	for _, g := range grants {
		if g.role != in.Role {
			continue
		}
		if g.ownedOnly && !in.Owns {
			return Decision{Outcome: DenyForbidden, Reason: fmt.Sprintf("%s may only %s their own %s", in.Role, in.Action, in.Resource)}
		}
		return Decision{Outcome: Allow}
	}

	return Decision{Outcome: DenyForbidden, Reason: fmt.Sprintf("role %s may not %s %s", in.Role, in.Action, in.Resource)}
}
