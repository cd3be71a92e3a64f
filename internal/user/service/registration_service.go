package service

import (
	"context"
	"database/sql"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/infrastructure/mysql"
)

const (
	maxUsernameLength = 150
	// bcrypt rejects longer passwords.
	maxPasswordBytes = 72
)

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	Group           string
}

type RegistrationService struct {
	db         mysql.Beginner
	users      UserRepository
	groups     GroupRepository
	bcryptCost int
	logger     *zap.Logger
}

func NewRegistrationService(db mysql.Beginner, users UserRepository, groups GroupRepository, bcryptCost int, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		db:         db,
		users:      users,
		groups:     groups,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates the user and its group membership in one transaction.
// An empty group registers a customer.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*domain.User, domain.Role, error) {
	role, err := ValidateRegistration(in)
	if err != nil {
		return nil, domain.RoleNone, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, domain.RoleNone, apperrors.NewInternalError("hashing password", err)
	}

	user := domain.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, domain.RoleNone, err
	}
	defer tx.Rollback()

	user.ID, err = s.users.Create(ctx, tx, user)
	if err != nil {
		return nil, domain.RoleNone, err
	}

	if _, err := s.groups.AddMember(ctx, tx, user.ID, role); err != nil {
		return nil, domain.RoleNone, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit registration", zap.String("username", user.Username), zap.Error(err))
		return nil, domain.RoleNone, err
	}

	s.logger.Info("user registered", zap.Int("userId", user.ID), zap.String("role", role.String()))

	return &user, role, nil
}

// ValidateRegistration checks the request and returns the role it asks for.
func ValidateRegistration(in RegisterInput) (domain.Role, error) {
	var details []apperrors.ValidationDetail

	username := strings.TrimSpace(in.Username)
	if username == "" {
		details = append(details, apperrors.ValidationDetail{Field: "username", Message: "username is required"})
	} else if len(username) > maxUsernameLength {
		details = append(details, apperrors.ValidationDetail{Field: "username", Message: "username must be at most 150 characters"})
	}

	if email := strings.TrimSpace(in.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email must be a valid address"})
		}
	}

	if in.Password == "" {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password is required"})
	} else if len(in.Password) > maxPasswordBytes {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password must be at most 72 bytes"})
	} else if in.Password != in.PasswordConfirm {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "passwords do not match"})
	}

	role := domain.RoleCustomer
	if in.Group != "" {
		parsed, ok := domain.ParseRole(in.Group)
		if !ok {
			details = append(details, apperrors.ValidationDetail{Field: "group", Message: "group must be one of Customers, Managers, Delivery Crew"})
		}
		role = parsed
	}

	if len(details) > 0 {
		return domain.RoleNone, apperrors.NewValidationError("validation failed", details...)
	}

	return role, nil
}
