package services

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error is the failure shape every service operation returns: a
// status-like numeric code plus a human-readable message. Handlers map
// it straight onto the HTTP response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func ErrValidation(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusBadRequest, format, args...)
}

func ErrUnauthenticated(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusUnauthorized, format, args...)
}

func ErrForbidden(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusForbidden, format, args...)
}

func ErrNotFound(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusNotFound, format, args...)
}

func ErrConflict(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusConflict, format, args...)
}

func ErrExpired(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusGone, format, args...)
}

// ErrInvalidTransition reports an operation that is not legal from the
// record's current status.
func ErrInvalidTransition(operation, status string) *Error {
	return NewError(fiber.StatusBadRequest, "cannot %s a booking request in status %q", operation, status)
}

// AsError unwraps a service error, falling back to a 500 for anything
// the service layer did not classify.
func AsError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return NewError(fiber.StatusInternalServerError, "internal server error")
}
