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

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting principal's role does not permit the action.
var ErrForbidden = errors.New("permission denied")

// ErrUnauthorized indicates that the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidTransition indicates that the requested action is not legal from the current status.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrConflict indicates a concurrent modification (lock contention or version mismatch).
// The single operation may be retried by the caller.
var ErrConflict = errors.New("concurrent modification, retry the operation")

// ErrTransient indicates an infrastructure failure (connection reset, timeout) that is safe to retry.
var ErrTransient = errors.New("transient storage failure")

// ErrInternal is returned when an unexpected failure must not leak details to the caller.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and a message while keeping the cause reachable via errors.Is/As.
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

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError matching ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewValidationError returns an AppError matching ErrValidation.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewConflictError returns an AppError matching ErrDuplicate.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

// NewRetryableConflictError returns an AppError matching ErrConflict.
func NewRetryableConflictError(message string, cause error) *AppError {
	if cause == nil {
		return NewAppError(http.StatusConflict, message, ErrConflict)
	}
	return NewAppError(http.StatusConflict, message, fmt.Errorf("%w: %v", ErrConflict, cause))
}

// NewTransientError returns an AppError matching ErrTransient.
func NewTransientError(message string, cause error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, fmt.Errorf("%w: %v", ErrTransient, cause))
}

// TransitionError reports an illegal action together with the status the application was in,
// so callers can reconcile their view.
type TransitionError struct {
	Action        string
	CurrentStatus string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: action %q is not allowed from status %q", ErrInvalidTransition.Error(), e.Action, e.CurrentStatus)
}

// Is makes errors.Is(err, ErrInvalidTransition) hold for TransitionError.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// Reason names the error class of err using the identifiers exposed in bulk responses.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrInvalidTransition):
		return "InvalidTransition"
	case errors.Is(err, ErrForbidden):
		return "PermissionDenied"
	case errors.Is(err, ErrConflict):
		return "ConflictRetryable"
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrDuplicate):
		return "Duplicate"
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	default:
		return "InternalError"
	}
}
