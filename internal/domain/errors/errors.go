// Package errors defines the application error taxonomy exposed to callers.
package errors

import (
	"net/http"

	"swapmeet/internal/errors"
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

// Is matches errors that share the same business error code, so copies made
// by WithDetails still compare equal to their predefined instance.
func (e *BaseError) Is(target error) bool {
	base, ok := target.(*BaseError)

	return ok && e.errorCode == base.errorCode
}

// WithDetails returns a copy of the error with detailed information attached.
// Details never contain token contents or secrets.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Lifecycle errors
	ErrInvalidTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_TRANSITION",
		"the swap is not in a state that allows this operation",
		"",
	)

	ErrNotAuthorized = NewBaseError(
		http.StatusForbidden,
		"NOT_AUTHORIZED",
		"you are not allowed to perform this action on the swap",
		"",
	)

	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"the request failed validation",
		"",
	)

	ErrAlreadyConfirmed = NewBaseError(
		http.StatusConflict,
		"ALREADY_CONFIRMED",
		"your confirmation for this swap was already recorded",
		"",
	)

	ErrExtensionPending = NewBaseError(
		http.StatusConflict,
		"EXTENSION_PENDING",
		"an extension request is already pending for this swap",
		"",
	)

	// Token verification errors
	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"the proof token has expired",
		"",
	)

	ErrSwapMismatch = NewBaseError(
		http.StatusUnauthorized,
		"SWAP_MISMATCH",
		"the proof token belongs to a different swap",
		"",
	)

	ErrUserMismatch = NewBaseError(
		http.StatusUnauthorized,
		"USER_MISMATCH",
		"the proof token belongs to a different user",
		"",
	)

	ErrLocationMismatch = NewBaseError(
		http.StatusUnauthorized,
		"LOCATION_MISMATCH",
		"you are too far from the location the token was issued for",
		"",
	)

	ErrVerification = NewBaseError(
		http.StatusUnauthorized,
		"VERIFICATION_ERROR",
		"the proof token could not be verified",
		"",
	)

	// General errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"the requested resource was not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"the resource is in a conflicting state",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
