// Package apperr defines the error taxonomy surfaced to API callers. Every
// error carries a human-readable message; Status maps it to an HTTP code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError reports a missing user, product, order or registry entry.
type NotFoundError struct {
	Entity string
	ID     any
}

func NewNotFound(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// ValidationError reports malformed input: an empty order, a non-positive
// quantity, a phone number without digits.
type ValidationError struct {
	Message string
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a duplicate admin registry phone.
type ConflictError struct {
	Message string
}

func NewConflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func (e *ConflictError) Error() string { return e.Message }

// ForbiddenReason distinguishes a deployment with no admin sources at all
// from a caller that simply does not match any of them.
type ForbiddenReason string

const (
	ReasonNotConfigured  ForbiddenReason = "not configured"
	ReasonAccessRequired ForbiddenReason = "access required"
)

type ForbiddenError struct {
	Reason ForbiddenReason
}

func (e *ForbiddenError) Error() string {
	if e.Reason == ReasonNotConfigured {
		return "admin access is not configured"
	}
	return "admin access required"
}

// Status maps a taxonomy error to its HTTP status code. Unknown errors are
// treated as internal.
func Status(err error) int {
	var (
		notFound   *NotFoundError
		validation *ValidationError
		conflict   *ConflictError
		forbidden  *ForbiddenError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &conflict):
		return http.StatusBadRequest
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
