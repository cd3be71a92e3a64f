package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/httpx"
	"littlelemon/internal/identity"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

type TokenController struct {
	auth   Authenticator
	logger *zap.Logger
}

func NewTokenController(auth Authenticator, logger *zap.Logger) *TokenController {
	return &TokenController{
		auth:   auth,
		logger: logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

func (c *TokenController) Login(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	token, err := c.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, loginResponse{AuthToken: token})
}

func (c *TokenController) Logout(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	token, ok := identity.TokenFromHeader(r.Header.Get("Authorization"))
	if !ok || !identity.CallerFromContext(r.Context()).Authenticated() {
		httpx.WriteError(w, logger, traceID, apperrors.NewUnauthenticatedError("authentication credentials were not provided"))
		return
	}

	if err := c.auth.Logout(r.Context(), token); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteNoContent(w)
}
