package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"littlelemon/internal/authz"
	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/httpx"
	"littlelemon/internal/identity"
	"littlelemon/internal/user/service"
)

type Directory interface {
	AddMember(ctx context.Context, role domain.Role, userID int) (*service.Confirmation, error)
	RemoveMember(ctx context.Context, role domain.Role, userID int) (*service.Confirmation, error)
	ListMembers(ctx context.Context, role domain.Role) ([]domain.User, error)
}

// GroupController serves the membership endpoints of one role. The router
// mounts one instance per managed group.
type GroupController struct {
	directory Directory
	role      domain.Role
	logger    *zap.Logger
}

func NewGroupController(directory Directory, role domain.Role, logger *zap.Logger) *GroupController {
	return &GroupController{
		directory: directory,
		role:      role,
		logger:    logger,
	}
}

type memberDTO struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type listMembersResponse struct {
	Users []memberDTO `json:"users"`
}

type addMemberRequest struct {
	UserID int `json:"userId"`
}

type membershipResponse struct {
	Detail  string `json:"detail"`
	UserID  int    `json:"userId"`
	Group   string `json:"group"`
	Changed bool   `json:"changed"`
}

func (c *GroupController) List(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	if err := identity.CallerFromContext(r.Context()).Authorize(authz.ResourceGroupMembership, authz.ActionList, false); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	users, err := c.directory.ListMembers(r.Context(), c.role)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	resp := listMembersResponse{Users: make([]memberDTO, len(users))}
	for i, u := range users {
		resp.Users[i] = memberDTO{ID: u.ID, Username: u.Username, Email: u.Email}
	}

	httpx.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *GroupController) Add(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	if err := identity.CallerFromContext(r.Context()).Authorize(authz.ResourceGroupMembership, authz.ActionCreate, false); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	var req addMemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}
	if req.UserID <= 0 {
		httpx.WriteError(w, logger, traceID, apperrors.NewValidationError("userId is required", apperrors.ValidationDetail{
			Field:   "userId",
			Message: "userId must be a positive integer",
		}))
		return
	}

	conf, err := c.directory.AddMember(r.Context(), c.role, req.UserID)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, toMembershipResponse(conf))
}

func (c *GroupController) Remove(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	if err := identity.CallerFromContext(r.Context()).Authorize(authz.ResourceGroupMembership, authz.ActionDelete, false); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	userID, err := httpx.PathID(r, "userId")
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	conf, err := c.directory.RemoveMember(r.Context(), c.role, userID)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, toMembershipResponse(conf))
}

func toMembershipResponse(conf *service.Confirmation) membershipResponse {
	return membershipResponse{
		Detail:  conf.Message,
		UserID:  conf.UserID,
		Group:   conf.Role.String(),
		Changed: conf.Changed,
	}
}
