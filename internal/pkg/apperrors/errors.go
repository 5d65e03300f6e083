package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)

// Query errors
var (
	ErrInvalidParameter = errors.New("invalid query parameter")
)

// Document errors
var (
	ErrDocumentNotFound = errors.New("document not found")
	// ErrBlobMissing means the document row exists but its backing file
	// cannot be retrieved. Reported separately from ErrDocumentNotFound.
	ErrBlobMissing = errors.New("document file missing from storage")
)

// Infrastructure errors
var (
	// ErrStorageUnavailable marks transient persistence failures that are
	// safe for the caller to retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError wraps a sentinel error with a specific message
func NewError(err error, message string) error {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewInvalidParameterError creates an ErrInvalidParameter with a message
func NewInvalidParameterError(message string) error {
	return &CustomError{
		Err:     ErrInvalidParameter,
		Message: message,
	}
}

// NewNotFoundError creates an ErrResourceNotFound with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}
