package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDomainInvariant indicates that an operation would break a structural rule
// (for example deleting the default currency).
var ErrDomainInvariant = errors.New("domain invariant violated")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// It is a domain invariant violation, so errors.Is(err, ErrDomainInvariant) also holds.
var ErrDuplicate = fmt.Errorf("%w: resource already exists", ErrDomainInvariant)

// ErrDependencyUnavailable indicates that an expected external table or collaborator is missing.
var ErrDependencyUnavailable = errors.New("dependency unavailable")

// ErrPersistence indicates an unexpected storage failure.
var ErrPersistence = errors.New("persistence error")

// AppError carries an HTTP-ish status code and a message along with the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError returns an error matching ErrValidation.
func NewValidationError(message string) error {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewNotFoundError returns an error matching ErrNotFound.
func NewNotFoundError(message string) error {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewDomainError returns an error matching ErrDomainInvariant.
func NewDomainError(message string) error {
	return NewAppError(http.StatusConflict, message, ErrDomainInvariant)
}

// NewDuplicateError returns an error matching both ErrDuplicate and ErrDomainInvariant.
func NewDuplicateError(message string) error {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

// NewDependencyUnavailableError returns an error matching ErrDependencyUnavailable.
func NewDependencyUnavailableError(message string) error {
	return NewAppError(http.StatusServiceUnavailable, message, ErrDependencyUnavailable)
}

// NewPersistenceError wraps a storage failure so that it matches both ErrPersistence and the cause.
func NewPersistenceError(message string, err error) error {
	return NewAppError(http.StatusInternalServerError, message, fmt.Errorf("%w: %w", ErrPersistence, err))
}

// HTTPStatus maps an error to the status code handlers should respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDomainInvariant):
		return http.StatusConflict
	case errors.Is(err, ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
