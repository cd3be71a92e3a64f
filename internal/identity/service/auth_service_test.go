package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/identity"
)

type mockUserRepository struct {
	users map[int]domain.User
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

type memoryTokenRepository struct {
	tokens map[string]int
}

func (m *memoryTokenRepository) Insert(ctx context.Context, tokenHash string, userID int) error {
	m.tokens[tokenHash] = userID
	return nil
}

func (m *memoryTokenRepository) FindUserID(ctx context.Context, tokenHash string) (int, error) {
	if id, ok := m.tokens[tokenHash]; ok {
		return id, nil
	}
	return 0, apperrors.NewNotFoundError("token not found")
}

func (m *memoryTokenRepository) Delete(ctx context.Context, tokenHash string) (int64, error) {
	if _, ok := m.tokens[tokenHash]; !ok {
		return 0, nil
	}
	delete(m.tokens, tokenHash)
	return 1, nil
}

type mockRoleResolver struct {
	ResolveRoleFunc func(ctx context.Context, userID int) (domain.Role, error)
}

func (m *mockRoleResolver) ResolveRole(ctx context.Context, userID int) (domain.Role, error) {
	return m.ResolveRoleFunc(ctx, userID)
}

func newTestAuthService(t *testing.T) (*AuthService, *memoryTokenRepository) {
	hash, err := bcrypt.GenerateFromPassword([]byte("lemon123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &mockUserRepository{users: map[int]domain.User{
		7: {ID: 7, Username: "adrian", PasswordHash: string(hash)},
	}}
	tokens := &memoryTokenRepository{tokens: map[string]int{}}
	roles := &mockRoleResolver{
		ResolveRoleFunc: func(ctx context.Context, userID int) (domain.Role, error) {
			return domain.RoleDeliveryCrew, nil
		},
	}

	return NewAuthService(users, tokens, roles, 32, zap.NewNop()), tokens
}

func TestAuthService_LoginAuthenticateLogout(t *testing.T) {
	svc, tokens := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "adrian", "lemon123")
	require.NoError(t, err)
	assert.Len(t, token, 64)

	_, stored := tokens.tokens[token]
	assert.False(t, stored, "raw token must not be stored")
	assert.Equal(t, 7, tokens.tokens[identity.HashToken(token)])

	caller, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, identity.Caller{UserID: 7, Username: "adrian", Role: domain.RoleDeliveryCrew}, caller)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Authenticate(ctx, token)
	_, ok := apperrors.IsUnauthenticatedError(err)
	assert.True(t, ok)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, tokens := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "adrian", "wrong")
	_, ok := apperrors.IsUnauthenticatedError(err)
	assert.True(t, ok)

	_, err = svc.Login(ctx, "nobody", "lemon123")
	_, ok = apperrors.IsUnauthenticatedError(err)
	assert.True(t, ok)

	_, err = svc.Login(ctx, "", "")
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)

	assert.Empty(t, tokens.tokens)
}

func TestAuthService_Authenticate_RoleLookupFailure(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	token, err := svc.Login(ctx, "adrian", "lemon123")
	require.NoError(t, err)

	boom := errors.New("db down")
	svc.roles = &mockRoleResolver{
		ResolveRoleFunc: func(ctx context.Context, userID int) (domain.Role, error) {
			return domain.RoleNone, boom
		},
	}

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, boom)
}
