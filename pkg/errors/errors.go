package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal error")
	ErrRemoteUnavail  = errors.New("remote service unavailable")
	ErrSessionMissing = errors.New("no active session")
)

// AppError represents a structured application error with an HTTP status mapping.
// For remote failures the status is the status code the storefront API returned.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a not-found error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: message,
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a bad-input error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates an authentication error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates an authorization error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Conflict creates a conflict error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// RemoteUnavailable creates an error for an unreachable or failing remote API.
func RemoteUnavailable(message string) *AppError {
	return &AppError{
		Code:    "REMOTE_UNAVAILABLE",
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     ErrRemoteUnavail,
	}
}

// SessionMissing creates an error for operations that require an authenticated
// principal when none is established.
func SessionMissing(operation string) *AppError {
	return &AppError{
		Code:    "SESSION_MISSING",
		Message: fmt.Sprintf("%s requires an authenticated session", operation),
		Status:  http.StatusUnauthorized,
		Err:     ErrSessionMissing,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// FromStatus translates a remote HTTP status code and message into the taxonomy.
// Used when parsing non-2xx responses from the storefront API.
func FromStatus(status int, message string) error {
	switch {
	case status == http.StatusNotFound:
		return NotFound(message)
	case status == http.StatusBadRequest:
		return InvalidInput(message)
	case status == http.StatusUnauthorized:
		return Unauthorized(message)
	case status == http.StatusForbidden:
		return Forbidden(message)
	case status == http.StatusConflict:
		return Conflict(message)
	case status == http.StatusServiceUnavailable:
		return RemoteUnavailable(message)
	case status >= 500:
		return &AppError{Code: "REMOTE_ERROR", Message: message, Status: status, Err: ErrInternal}
	default:
		return &AppError{Code: "REMOTE_ERROR", Message: message, Status: status}
	}
}

// HTTPStatus returns the HTTP status code associated with the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrSessionMissing):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRemoteUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
