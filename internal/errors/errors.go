package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a habits error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// HabitError represents a structured error with code, status, and details.
type HabitError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	cause   error
}

// Error implements the error interface.
func (e *HabitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *HabitError) Unwrap() error {
	return e.cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *HabitError {
	return &HabitError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidField creates a 400 error naming the offending field.
func NewInvalidField(field, msg string) *HabitError {
	return &HabitError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: fmt.Sprintf("%s: %s", field, msg),
		Details: map[string]any{"field": field},
	}
}

// NewNotFound creates a 404 error for when a habit cannot be found.
func NewNotFound(id string) *HabitError {
	return &HabitError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("habit not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *HabitError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &HabitError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		cause:   err,
	}
}

// Is checks if err (or anything it wraps) is a HabitError with the given code.
func Is(err error, code ErrorCode) bool {
	var hErr *HabitError
	if stderrors.As(err, &hErr) {
		return hErr.Code == code
	}
	return false
}

// As extracts a HabitError from err, wrapping unknown errors as INTERNAL.
func As(err error) *HabitError {
	var hErr *HabitError
	if stderrors.As(err, &hErr) {
		return hErr
	}
	return NewInternal(err)
}
