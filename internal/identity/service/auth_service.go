package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/identity"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type TokenRepository interface {
	Insert(ctx context.Context, tokenHash string, userID int) error
	FindUserID(ctx context.Context, tokenHash string) (int, error)
	Delete(ctx context.Context, tokenHash string) (int64, error)
}

type RoleResolver interface {
	ResolveRole(ctx context.Context, userID int) (domain.Role, error)
}

type AuthService struct {
	users      UserRepository
	tokens     TokenRepository
	roles      RoleResolver
	tokenBytes int
	logger     *zap.Logger
}

func NewAuthService(users UserRepository, tokens TokenRepository, roles RoleResolver, tokenBytes int, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		roles:      roles,
		tokenBytes: tokenBytes,
		logger:     logger,
	}
}

// Login checks the credentials and issues a new token. Unknown usernames and
// wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.NewValidationError("username and password are required",
			apperrors.ValidationDetail{Field: "username", Message: "username is required"},
			apperrors.ValidationDetail{Field: "password", Message: "password is required"},
		)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return "", apperrors.NewUnauthenticatedError("unable to log in with provided credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.Int("userId", user.ID))
		return "", apperrors.NewUnauthenticatedError("unable to log in with provided credentials")
	}

	token, err := identity.GenerateToken(s.tokenBytes)
	if err != nil {
		return "", apperrors.NewInternalError("generating token", err)
	}

	if err := s.tokens.Insert(ctx, identity.HashToken(token), user.ID); err != nil {
		return "", err
	}

	s.logger.Info("user logged in", zap.Int("userId", user.ID))

	return token, nil
}

// Logout revokes token. Revoking an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	_, err := s.tokens.Delete(ctx, identity.HashToken(token))
	return err
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (identity.Caller, error) {
	userID, err := s.tokens.FindUserID(ctx, identity.HashToken(token))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return identity.Caller{}, apperrors.NewUnauthenticatedError("invalid token")
		}
		return identity.Caller{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return identity.Caller{}, apperrors.NewUnauthenticatedError("invalid token")
		}
		return identity.Caller{}, err
	}

	role, err := s.roles.ResolveRole(ctx, user.ID)
	if err != nil {
		return identity.Caller{}, err
	}

	return identity.Caller{UserID: user.ID, Username: user.Username, Role: role}, nil
}
