package errors

import (
	"net/http"

	"authd/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types.
// Messages never include the plaintext password or the stored hash.
var (
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"user not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"ALREADY_EXISTS",
		"email is already registered",
		"",
	)

	// ErrInvalidCredentials deliberately carries the same message whether the
	// account is missing or the password is wrong, so callers cannot enumerate
	// registered emails. The two cases stay distinct internally.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid email or password",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"invalid or expired token",
		"",
	)

	ErrDirectoryUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"DIRECTORY_UNAVAILABLE",
		"user directory unavailable",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"password processing failed",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DirectoryUnavailableError represents a user directory failure, implementing
// the AppError interface. The underlying driver error stays out of Message
// and Details; it is only reachable through the error chain for logging.
type DirectoryUnavailableError struct {
	err     error
	details string
}

// NewDirectoryUnavailableError creates a directory-related error
func NewDirectoryUnavailableError(err error, details string) AppError {
	return &DirectoryUnavailableError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DirectoryUnavailableError) Error() string {
	return errors.Wrap(e.err, "user directory request failed").Error()
}

// Unwrap exposes the underlying driver error for errors.Is/As.
func (e *DirectoryUnavailableError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DirectoryUnavailableError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *DirectoryUnavailableError) ErrorCode() string {
	return "DIRECTORY_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *DirectoryUnavailableError) Message() string {
	return "user directory unavailable"
}

// Details returns detailed error information
func (e *DirectoryUnavailableError) Details() string {
	return e.details
}
