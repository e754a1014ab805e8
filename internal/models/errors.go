package models

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the standardized API error envelope.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError is a classified application error. Status is the HTTP status
// the error maps to; Code is a stable machine-readable cause.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports missing or malformed input (400).
func NewValidationError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewUnauthorizedError reports a missing or invalid credential (401).
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

// NewForbiddenError reports an ownership or permission violation (403).
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: message,
	}
}

// NewNotFoundError reports a missing resource (404).
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Status:  fiber.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewConflictError reports a duplicate unique field (409).
func NewConflictError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusConflict,
		Code:    "CONFLICT",
		Message: message,
	}
}

// NewInternalError wraps an unexpected failure (500). The wrapped error is
// logged but never serialized to the caller.
func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  fiber.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError renders err as the standardized error envelope. AppErrors
// carry their own status and code; anything else collapses to a generic 500
// so unexpected failures never leak internals.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}

	// The wrapped cause never reaches the client, so it has to be logged
	// here or it is lost.
	if appErr.Status >= fiber.StatusInternalServerError && appErr.Err != nil {
		slog.ErrorContext(c.UserContext(), "unhandled error",
			slog.String("code", appErr.Code),
			slog.String("error", appErr.Err.Error()),
		)
	}

	resp := ErrorResponse{
		Status: appErr.Status,
		Error:  appErr.Message,
		Code:   appErr.Code,
	}
	return c.Status(appErr.Status).JSON(resp)
}
