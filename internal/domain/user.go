package domain

import "time"

type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Role is the capability set a user acts with. Roles are disjoint; there is
// no inheritance between them.
type Role string

const (
	RoleNone         Role = ""
	RoleCustomer     Role = "customer"
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery_crew"
)

// rolePrecedence orders roles when a user belongs to more than one group.
var rolePrecedence = []Role{RoleManager, RoleDeliveryCrew, RoleCustomer}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleManager, RoleDeliveryCrew:
		return true
	}
	return false
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// ParseRole accepts the canonical role names plus the group spellings used
// by the HTTP surface ("delivery-crew", "Delivery Crew", plurals).
func ParseRole(s string) (Role, bool) {
	switch s {
	case "customer", "customers", "Customer", "Customers":
		return RoleCustomer, true
	case "manager", "managers", "Manager", "Managers":
		return RoleManager, true
	case "delivery_crew", "delivery-crew", "Delivery Crew", "DeliveryCrew":
		return RoleDeliveryCrew, true
	}
	return RoleNone, false
}

// EffectiveRole picks the single role used for authorization out of a set of
// group memberships: Manager, then DeliveryCrew, then Customer.
func EffectiveRole(memberships []Role) Role {
	for _, candidate := range rolePrecedence {
		for _, m := range memberships {
			if m == candidate {
				return candidate
			}
		}
	}
	return RoleNone
}
