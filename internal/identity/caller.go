// Package identity authenticates requests. It issues opaque tokens on login,
// resolves a presented token to a Caller and stores that Caller in the
// request context for the controllers.
package identity

import (
	"context"

	"littlelemon/internal/authz"
	"littlelemon/internal/domain"
)

// Caller is the authenticated user behind a request. The zero value is an
// anonymous caller.
type Caller struct {
	UserID   int
	Username string
	Role     domain.Role
}

func (c Caller) Authenticated() bool {
	return c.UserID > 0
}

// Authorize runs the policy for this caller. owns is the ownership relation
// the resource requires, see authz.Input.
func (c Caller) Authorize(resource authz.Resource, action authz.Action, owns bool) error {
	return authz.Decide(authz.Input{
		Authenticated: c.Authenticated(),
		Role:          c.Role,
		Resource:      resource,
		Action:        action,
		Owns:          owns,
	}).Err()
}

type callerKey struct{}

func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller stored by the middleware, or an
// anonymous caller.
func CallerFromContext(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerKey{}).(Caller); ok {
		return c
	}
	return Caller{}
}
