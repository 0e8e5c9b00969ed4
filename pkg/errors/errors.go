// Package errors defines the error kinds the core returns and helpers for
// inspecting and wrapping them. Every core operation returns either a
// success value or one of these kinds; the HTTP status each kind maps to
// is decided only at the boundary layer (see pkg/errors/handler.go), never
// inside the core itself.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind represents one of the core's error kinds.
type Kind string

const (
	// KindNotFound means a user, database, or file is absent.
	KindNotFound Kind = "NOT_FOUND"
	// KindAuthFailed means an unknown user or a password mismatch.
	KindAuthFailed Kind = "AUTH_FAILED"
	// KindForbidden means a user attempted to act on another user's database.
	KindForbidden Kind = "FORBIDDEN"
	// KindConflict means a duplicate user name or duplicate database name.
	KindConflict Kind = "CONFLICT"
	// KindBadRequest means malformed input: bad JSON, unparseable filters,
	// page without limit, or a non-object record on insert.
	KindBadRequest Kind = "BAD_REQUEST"
	// KindCorrupt means a database file exists but doesn't parse as a JSON
	// array of objects.
	KindCorrupt Kind = "CORRUPT"
	// KindIO means a disk error on read or write.
	KindIO Kind = "IO"
)

// AppError is the error type every core operation returns on failure.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error, useful for IO/Corrupt kinds.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// HTTPStatus maps the error kind to a status code. Only the HTTP boundary
// layer should call this — the core never chooses a status code.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthFailed:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindBadRequest:
		return http.StatusBadRequest
	case KindCorrupt:
		return http.StatusUnprocessableEntity
	case KindIO:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewNotFound creates a NotFound error.
func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// NewAuthFailed creates an AuthFailed error.
func NewAuthFailed(message string) *AppError {
	if message == "" {
		message = "invalid username or password"
	}
	return &AppError{Kind: KindAuthFailed, Message: message}
}

// NewForbidden creates a Forbidden error.
func NewForbidden(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{Kind: KindForbidden, Message: message}
}

// NewConflict creates a Conflict error.
func NewConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewBadRequest creates a BadRequest error.
func NewBadRequest(message string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: message}
}

// NewCorrupt creates a Corrupt error.
func NewCorrupt(message string) *AppError {
	return &AppError{Kind: KindCorrupt, Message: message}
}

// NewIO creates an IO error, wrapping the underlying cause.
func NewIO(message string, cause error) *AppError {
	return &AppError{Kind: KindIO, Message: message, Cause: cause}
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// Wrap attaches additional context to an error without discarding its kind.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return &AppError{
			Kind:    appErr.Kind,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Cause:   appErr.Cause,
		}
	}
	return NewIO(message, err)
}
