// Package apperror defines the error taxonomy shared by the domain layer.
// Authorization and validation failures surface to the caller verbatim;
// storage failures are wrapped once at the repository boundary and never
// leaked as raw driver errors.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type categorizes an application error.
type Type int

const (
	Unknown Type = iota
	// Authorization: caller not identified or not permitted. Never reveals
	// whether the target resource exists.
	Authorization
	// Validation: candidate data violates a rule; Code identifies which.
	Validation
	// NotFound: a referenced entity is absent.
	NotFound
	// Storage: the underlying store failed or is unreachable.
	Storage
	// Upload: file ingestion failed.
	Upload
)

// Error is the application error type. Code is set for validation errors
// only; Err carries the underlying cause, if any.
type Error struct {
	Type    Type
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to an HTTP status for the transport layer.
func (e *Error) StatusCode() int {
	switch e.Type {
	case Authorization:
		return http.StatusUnauthorized
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Upload:
		return http.StatusBadRequest
	case Storage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func NewAuthorization(message string) *Error {
	return &Error{Type: Authorization, Message: message}
}

func NewValidation(code Code) *Error {
	return &Error{Type: Validation, Code: code, Message: string(code)}
}

func NewNotFound(entity string) *Error {
	return &Error{Type: NotFound, Message: entity + " not found"}
}

func NewStorage(message string, err error) *Error {
	return &Error{Type: Storage, Message: message, Err: err}
}

func NewUpload(message string, err error) *Error {
	return &Error{Type: Upload, Message: message, Err: err}
}

func is(err error, t Type) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Type == t
}

func IsAuthorization(err error) bool { return is(err, Authorization) }
func IsValidation(err error) bool    { return is(err, Validation) }
func IsNotFound(err error) bool      { return is(err, NotFound) }
func IsStorage(err error) bool       { return is(err, Storage) }
func IsUpload(err error) bool        { return is(err, Upload) }

// CodeOf returns the validation code carried by err, or "" when err is not a
// validation error.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
