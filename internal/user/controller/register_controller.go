package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"littlelemon/internal/domain"
	"littlelemon/internal/httpx"
	"littlelemon/internal/user/service"
)

type Registrar interface {
	Register(ctx context.Context, in service.RegisterInput) (*domain.User, domain.Role, error)
}

type RegisterController struct {
	registrar Registrar
	logger    *zap.Logger
}

func NewRegisterController(registrar Registrar, logger *zap.Logger) *RegisterController {
	return &RegisterController{
		registrar: registrar,
		logger:    logger,
	}
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	Group           string `json:"group"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"userId"`
	Group   string `json:"group"`
}

func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	user, role, err := c.registrar.Register(r.Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Group:           req.Group,
	})
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, registerResponse{
		Message: "User registered successfully.",
		UserID:  user.ID,
		Group:   role.String(),
	})
}
