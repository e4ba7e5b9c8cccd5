// Package apperrors defines the error taxonomy shared by the upstream client,
// the evolution pipeline and the HTTP layer. Every failure carries a
// machine-readable code and an HTTP-equivalent status.
package apperrors

import (
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
)

type Code string

const (
	// CodeInvalidInput covers unusable caller input and, by original convention,
	// structurally valid requests that match nothing after filtering.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodePokeAPINotFound means the upstream resource does not exist.
	CodePokeAPINotFound Code = "POKEAPI_NOT_FOUND"
	// CodePokeAPIError means the upstream returned a non-2xx, non-404 response
	// or structurally incomplete data.
	CodePokeAPIError Code = "POKEAPI_ERROR"
	// CodePokeAPITimeout means the upstream call exceeded its deadline.
	CodePokeAPITimeout Code = "POKEAPI_TIMEOUT"
	// CodeCacheWriteFailed is reserved. Cache persistence failures are logged
	// and swallowed, so this code is never returned by the service.
	CodeCacheWriteFailed Code = "CACHE_WRITE_FAILED"
)

// Error is the single typed failure of the pokedex domain. Message is safe to
// display to the caller; Cause is for logging only and never serialized.
type Error struct {
	Code    Code
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(code Code, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func Newf(code Code, status int, format string, args ...any) *Error {
	return &Error{Code: code, Status: status, Message: fmt.Sprintf(format, args...)}
}

// WithCause attaches the original error for logging purposes.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// InvalidInput is a 400: the caller-supplied identifier/filter combination is
// unusable.
func InvalidInput(format string, args ...any) *Error {
	return Newf(CodeInvalidInput, http.StatusBadRequest, format, args...)
}

// FilterMismatch is a 404 that keeps the INVALID_INPUT code: the request was
// well-formed but the filter combination matched nothing.
func FilterMismatch(format string, args ...any) *Error {
	return Newf(CodeInvalidInput, http.StatusNotFound, format, args...)
}

// UpstreamNotFound is a 404: the upstream resource does not exist.
func UpstreamNotFound(format string, args ...any) *Error {
	return Newf(CodePokeAPINotFound, http.StatusNotFound, format, args...)
}

// Upstream is a 502: the upstream failed or returned broken data.
func Upstream(format string, args ...any) *Error {
	return Newf(CodePokeAPIError, http.StatusBadGateway, format, args...)
}

// UpstreamTimeout is a 504: the upstream call exceeded its deadline.
func UpstreamTimeout(format string, args ...any) *Error {
	return Newf(CodePokeAPITimeout, http.StatusGatewayTimeout, format, args...)
}

// CacheWriteFailed is declared for completeness; the resolution service
// swallows persistence failures instead of raising this.
func CacheWriteFailed(format string, args ...any) *Error {
	return Newf(CodeCacheWriteFailed, http.StatusInternalServerError, format, args...)
}

// IsError reports whether err is a domain Error.
func IsError(err error) bool {
	_, ok := err.(*Error)
	return ok
}

// GetCode returns the error code, or empty string for foreign errors.
func GetCode(err error) Code {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}

// GetStatusCode returns the HTTP-equivalent status, defaulting to 500 for
// foreign errors.
func GetStatusCode(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Status
	}
	return http.StatusInternalServerError
}

// ToHTTPError bridges the domain error into the shared httperror type used by
// the echo error handler. The code travels in the error meta.
func (e *Error) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(e.Status, e.Message).AddMetaValue("code", string(e.Code))
}
