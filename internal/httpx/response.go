// Package httpx holds the JSON request and response helpers shared by the
// controllers, including the mapping from typed errors to HTTP statuses.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "littlelemon/internal/errors"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Error     string                       `json:"error"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError classifies err and writes the matching error body. Anything not
// in the taxonomy is logged and reported as a 500 without its message.
func WriteError(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	status, kind, message := classify(err)

	resp := ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Error:     kind,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		resp.Details = ve.Details
	}

	if status == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.Error(err))
	} else {
		logger.Info("request rejected", zap.String("error", kind), zap.String("message", message))
	}

	WriteJSON(w, logger, status, resp)
}

func classify(err error) (int, string, string) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		return http.StatusBadRequest, "VALIDATION_ERROR", ve.Message
	}
	if e, ok := apperrors.IsEmptyCartError(err); ok {
		return http.StatusBadRequest, "EMPTY_CART", e.Error()
	}
	if e, ok := apperrors.IsNotDeliveryCrewRoleError(err); ok {
		return http.StatusBadRequest, "NOT_DELIVERY_CREW", e.Error()
	}
	if e, ok := apperrors.IsInvalidTransitionError(err); ok {
		return http.StatusBadRequest, "INVALID_TRANSITION", e.Error()
	}
	if e, ok := apperrors.IsUnauthenticatedError(err); ok {
		return http.StatusUnauthorized, "UNAUTHENTICATED", e.Message
	}
	if e, ok := apperrors.IsForbiddenError(err); ok {
		return http.StatusForbidden, "FORBIDDEN", e.Message
	}
	if e, ok := apperrors.IsNotFoundError(err); ok {
		return http.StatusNotFound, "NOT_FOUND", e.Message
	}
	if e, ok := apperrors.IsConflictError(err); ok {
		return http.StatusConflict, "CONFLICT", e.Message
	}
	if _, ok := apperrors.IsDeadlockError(err); ok {
		return http.StatusConflict, "DEADLOCK", "the request conflicted with a concurrent update, try again"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred"
}

// DecodeJSON decodes the request body into dst. An empty body leaves dst
// untouched; malformed JSON becomes a ValidationError on field "body".
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
	}
	return nil
}
