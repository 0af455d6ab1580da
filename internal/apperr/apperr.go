// Package apperr provides typed application errors shared by all modules.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	// KindValidation marks malformed input.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindNotFound marks a missing team, request or participant.
	KindNotFound Kind = "NOT_FOUND"
	// KindConflict marks duplicate names/codes, existing membership and duplicate requests.
	KindConflict Kind = "CONFLICT"
	// KindConstraint marks a violated team size or gender-balance rule.
	KindConstraint Kind = "CONSTRAINT_VIOLATION"
	// KindUnauthorized marks a non-leader attempting a leader-only action.
	KindUnauthorized Kind = "UNAUTHORIZED"
	// KindUnavailable marks a downstream storage failure.
	KindUnavailable Kind = "UNAVAILABLE"
)

// Error is an application error with a stable machine-readable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	cause   error
}

// New creates a new sentinel application error.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// WithMessage returns a copy of e carrying a caller-specific message.
// The copy still matches e under errors.Is.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: message, cause: e.cause}
}

// Error implements error.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors by code so wrapped copies compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// ErrUnavailable is the sentinel for storage failures.
var ErrUnavailable = New(KindUnavailable, "UNAVAILABLE", "storage unavailable")

// Unavailable wraps a raw downstream error. Application errors pass through unchanged.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return &Error{
		Kind:    ErrUnavailable.Kind,
		Code:    ErrUnavailable.Code,
		Message: ErrUnavailable.Message,
		cause:   err,
	}
}

// KindOf returns the kind of err, or an empty Kind for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// CodeOf returns the code of err, or INTERNAL_ERROR for foreign errors.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}

// MessageOf returns a message safe to show to callers.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error kind to an HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindConstraint:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
