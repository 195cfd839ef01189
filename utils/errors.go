package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures so HTTP callers can tell them apart.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindPrecondition ErrorKind = "PRECONDITION_FAILED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindPersistence  ErrorKind = "PERSISTENCE"
	KindValidation   ErrorKind = "VALIDATION"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
)

// Sentinels matched with errors.Is against any AppError of the same kind.
var (
	ErrNotFound     = &AppError{Kind: KindNotFound}
	ErrConflict     = &AppError{Kind: KindConflict}
	ErrPrecondition = &AppError{Kind: KindPrecondition}
	ErrForbidden    = &AppError{Kind: KindForbidden}
	ErrPersistence  = &AppError{Kind: KindPersistence}
	ErrValidation   = &AppError{Kind: KindValidation}
)

// AppError is the single error type raised by repositories and services.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports kind equality so callers can write errors.Is(err, utils.ErrNotFound).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

func NotFound(resource, id string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Precondition(message string) *AppError {
	return &AppError{Kind: KindPrecondition, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// Persistence wraps a store failure that is not otherwise classified.
func Persistence(op string, err error) *AppError {
	return &AppError{Kind: KindPersistence, Message: op, Err: err}
}

// KindOf returns the kind carried by err, or KindPersistence for
// unclassified errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

// HTTPStatus maps an error onto a response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindPrecondition, KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage hides internal detail for persistence failures.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindPersistence && appErr.Message != "" {
		return appErr.Message
	}
	return "An unexpected error occurred. Please try again later."
}
