package core

import (
	"net"
	"net/http"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when the backend reports a missing course, lesson
// or task.
var ErrNotFound = errors.New("not found")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries a display-ready message: either local input
// validation failures (Fields set) or a backend-reported 4xx detail
// (surfaced verbatim).
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// APIError is an unexpected server-side failure (5xx).
type APIError struct {
	StatusCode int
	Detail     string
}

func (err APIError) Error() string {
	if err.Detail != "" {
		return err.Detail
	}
	return http.StatusText(err.StatusCode)
}

// AuthorizationError is a 401/403 on an authenticated call: the credential
// is definitely rejected, the session must be torn down.
type AuthorizationError struct {
	StatusCode int
	Detail     string
}

func (err AuthorizationError) Error() string {
	if err.Detail != "" {
		return err.Detail
	}
	return http.StatusText(err.StatusCode)
}

// TransientError is a timeout or connection failure: retry-eligible and
// never grounds for destroying the session.
type TransientError struct {
	Err error
}

func (err TransientError) Error() string { return err.Err.Error() }
func (err TransientError) Unwrap() error { return err.Err }
func (err TransientError) Timeout() bool {
	if terr, ok := err.Err.(net.Error); ok {
		return terr.Timeout()
	}
	return false
}

// IsAuthorizationLost reports whether err means the current credential was
// rejected by the backend.
func IsAuthorizationLost(err error) bool {
	_, ok := errors.Cause(err).(AuthorizationError)
	return ok
}

// IsTransient reports whether err is a retry-eligible transport failure.
func IsTransient(err error) bool {
	_, ok := errors.Cause(err).(TransientError)
	return ok
}

func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}
