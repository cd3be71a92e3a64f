package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/user/service"
)

type mockRegistrar struct {
	RegisterFunc func(ctx context.Context, in service.RegisterInput) (*domain.User, domain.Role, error)
}

func (m *mockRegistrar) Register(ctx context.Context, in service.RegisterInput) (*domain.User, domain.Role, error) {
	return m.RegisterFunc(ctx, in)
}

func TestRegisterController_Created(t *testing.T) {
	reg := &mockRegistrar{
		RegisterFunc: func(ctx context.Context, in service.RegisterInput) (*domain.User, domain.Role, error) {
			assert.Equal(t, "ana", in.Username)
			assert.Equal(t, "pw", in.PasswordConfirm)
			return &domain.User{ID: 3, Username: in.Username}, domain.RoleCustomer, nil
		},
	}
	ctrl := NewRegisterController(reg, zap.NewNop())

	rec := httptest.NewRecorder()
	body := `{"username":"ana","password":"pw","passwordConfirm":"pw"}`
	ctrl.Register(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"group":"customer"`)
}

func TestRegisterController_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: apperrors.NewValidationError("validation failed"), status: http.StatusBadRequest},
		{name: "duplicate", err: apperrors.NewConflictError("taken"), status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &mockRegistrar{
				RegisterFunc: func(ctx context.Context, in service.RegisterInput) (*domain.User, domain.Role, error) {
					return nil, domain.RoleNone, tt.err
				},
			}
			rec := httptest.NewRecorder()
			NewRegisterController(reg, zap.NewNop()).Register(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"ana"}`)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
