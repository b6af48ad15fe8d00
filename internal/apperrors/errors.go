package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a business-level conflict, e.g. a coupon usage cap
// already reached or a commission tier overlapping an existing one.
var ErrConflict = errors.New("conflict")

// ErrUnprocessable indicates input that is well-formed but rejected by a
// business rule, e.g. an amount not covered by any commission tier or an
// illegal transaction status transition.
var ErrUnprocessable = errors.New("unprocessable business state")

// ErrForbidden indicates the caller lacks the capability for the operation.
var ErrForbidden = errors.New("forbidden")

// AppError wraps an unexpected lower-level error with an HTTP-ish status code
// and a message safe to log. Handlers surface these as opaque server errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError for unexpected failures (storage faults etc.).
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a contextual message.
func NewNotFoundError(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// NewValidationError wraps ErrValidation with a contextual message.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NewDuplicateError wraps ErrDuplicate with a contextual message.
func NewDuplicateError(msg string) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, msg)
}

// NewConflictError wraps ErrConflict with a contextual message.
func NewConflictError(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// NewUnprocessableError wraps ErrUnprocessable with a contextual message.
func NewUnprocessableError(msg string) error {
	return fmt.Errorf("%w: %s", ErrUnprocessable, msg)
}

// NewForbiddenError wraps ErrForbidden with a contextual message.
func NewForbiddenError(msg string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}
