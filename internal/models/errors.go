package models

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError. Each maps to a fixed HTTP status.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeAuth         = "AUTH_ERROR"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeBlocked      = "BLOCKED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse is the uniform JSON envelope for failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
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

// Predefined error constructors

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

// NewAuthError returns the credential failure error. The same message is used
// for unknown email and wrong password so accounts cannot be enumerated.
func NewAuthError() *AppError {
	return &AppError{
		Code:    CodeAuth,
		Message: "Invalid credentials",
	}
}

func NewInvalidTokenError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidToken,
		Message: message,
	}
}

// NewBlockedError signals that the account's state prevents the action.
// The block reason, when recorded, is exposed to the caller.
func NewBlockedError(reason string) *AppError {
	msg := "Your account is blocked or deactivated"
	if reason != "" {
		msg = fmt.Sprintf("Your account is blocked: %s", reason)
	}
	return &AppError{
		Code:    CodeBlocked,
		Message: msg,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusForError maps an error to its HTTP status. Unknown errors map to 500.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeConflict:
		return fiber.StatusConflict
	case CodeAuth, CodeInvalidToken, CodeBlocked:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the uniform error envelope. Internal error details
// are included outside production only.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Success: false}

	var appErr *AppError
	if errors.As(err, &appErr) {
		response.Message = appErr.Message
		response.Code = appErr.Code
		if appErr.Err != nil && os.Getenv("APP_ENV") != "production" {
			response.Details = appErr.Err.Error()
		}
	} else {
		response.Message = err.Error()
	}

	return c.Status(status).JSON(response)
}

// RespondError maps the error to its status and writes the envelope.
func RespondError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, StatusForError(err), err)
}
