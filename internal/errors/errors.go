package errors

import (
	"errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

// UnauthenticatedError is returned when a request carries no valid identity.
type UnauthenticatedError struct {
	Message string
}

func (e *UnauthenticatedError) Error() string {
	return e.Message
}

func NewUnauthenticatedError(message string) *UnauthenticatedError {
	return &UnauthenticatedError{Message: message}
}

func IsUnauthenticatedError(err error) (*UnauthenticatedError, bool) {
	var ue *UnauthenticatedError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// ForbiddenError is returned when the caller is authenticated but its role
// or ownership does not allow the action.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func IsForbiddenError(err error) (*ForbiddenError, bool) {
	var fe *ForbiddenError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

type EmptyCartError struct {
	UserID int
}

func (e *EmptyCartError) Error() string {
	return "cart is empty"
}

func NewEmptyCartError(userID int) *EmptyCartError {
	return &EmptyCartError{UserID: userID}
}

func IsEmptyCartError(err error) (*EmptyCartError, bool) {
	var ece *EmptyCartError
	if errors.As(err, &ece) {
		return ece, true
	}
	return nil, false
}

// InvalidTransitionError reports an order status change that the lifecycle
// does not allow. From and To hold the wire names of the statuses.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func IsInvalidTransitionError(err error) (*InvalidTransitionError, bool) {
	var ite *InvalidTransitionError
	if errors.As(err, &ite) {
		return ite, true
	}
	return nil, false
}

type NotDeliveryCrewRoleError struct {
	UserID int
}

func (e *NotDeliveryCrewRoleError) Error() string {
	return fmt.Sprintf("user %d is not a member of the delivery crew", e.UserID)
}

func NewNotDeliveryCrewRoleError(userID int) *NotDeliveryCrewRoleError {
	return &NotDeliveryCrewRoleError{UserID: userID}
}

func IsNotDeliveryCrewRoleError(err error) (*NotDeliveryCrewRoleError, bool) {
	var nde *NotDeliveryCrewRoleError
	if errors.As(err, &nde) {
		return nde, true
	}
	return nil, false
}

// DeadlockError is returned when the database aborted the transaction
// because of a deadlock or a lock wait timeout. The client may retry.
type DeadlockError struct {
	Message string
	Cause   error
}

func (e *DeadlockError) Error() string {
	return e.Message
}

func (e *DeadlockError) Unwrap() error {
	return e.Cause
}

func NewDeadlockError(message string, cause error) *DeadlockError {
	return &DeadlockError{Message: message, Cause: cause}
}

func IsDeadlockError(err error) (*DeadlockError, bool) {
	var de *DeadlockError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

func IsInternalError(err error) (*InternalError, bool) {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
