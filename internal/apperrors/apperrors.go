// Package apperrors defines the operational error type handlers signal
// instead of writing HTTP responses themselves. A single error handler in the
// delivery layer turns these into the client-facing envelope.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an operational failure that is safe to show to a client.
type Error struct {
	Err     error
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusText returns the envelope status word for the error: "fail" for 4xx,
// "error" otherwise.
func (e *Error) StatusText() string {
	if e.Status >= 400 && e.Status < 500 {
		return "fail"
	}
	return "error"
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func Newf(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying cause for logs while exposing only message.
func Wrap(err error, status int, message string) *Error {
	return &Error{Err: err, Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict reports a duplicate unique field. Duplicates surface as 400, not
// 409, so clients handle them like any other validation failure.
func Conflict(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Internal(err error) *Error {
	return &Error{Err: err, Status: http.StatusInternalServerError, Message: "Something went very wrong"}
}

// From extracts an *Error from err's chain, or nil.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
