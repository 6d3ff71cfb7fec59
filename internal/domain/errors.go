package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// Precondition names a user-correctable reason an operation was refused.
type Precondition string

const (
	PreconditionPublishBanned     Precondition = "PUBLISH_BANNED"
	PreconditionEmptyDeck         Precondition = "EMPTY_DECK"
	PreconditionTooFewCards       Precondition = "TOO_FEW_CARDS"
	PreconditionNotOwner          Precondition = "NOT_OWNER"
	PreconditionNoChanges         Precondition = "NO_CHANGES"
	PreconditionAlreadyImported   Precondition = "ALREADY_IMPORTED"
	PreconditionInvalidTransition Precondition = "INVALID_TRANSITION"
)

func (p Precondition) String() string { return string(p) }

// PreconditionError is returned when an operation is refused for a reason
// the caller can act on. Callers branch on Reason, never on the message.
type PreconditionError struct {
	Reason Precondition
	Detail string
}

func (e *PreconditionError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return e.Detail
}

// Unwrap lets errors.Is match the broader taxonomy: ban and ownership
// refusals are Forbidden, everything else is PreconditionFailed.
func (e *PreconditionError) Unwrap() error {
	switch e.Reason {
	case PreconditionPublishBanned, PreconditionNotOwner:
		return ErrForbidden
	}
	return ErrPreconditionFailed
}

// NewPreconditionError creates a PreconditionError with a human-readable detail.
func NewPreconditionError(reason Precondition, detail string) *PreconditionError {
	return &PreconditionError{Reason: reason, Detail: detail}
}

// PreconditionOf returns the precondition reason carried by err, if any.
func PreconditionOf(err error) (Precondition, bool) {
	var pe *PreconditionError
	if errors.As(err, &pe) {
		return pe.Reason, true
	}
	return "", false
}

// ErrorKind is the closed set of failure kinds exposed to API callers.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindForbidden          ErrorKind = "FORBIDDEN"
	KindUnauthenticated    ErrorKind = "UNAUTHENTICATED"
	KindValidation         ErrorKind = "VALIDATION"
	KindPreconditionFailed ErrorKind = "PRECONDITION_FAILED"
	KindConflict           ErrorKind = "CONFLICT"
	KindAlreadyExists      ErrorKind = "ALREADY_EXISTS"
	KindInternal           ErrorKind = "INTERNAL"
)

func (k ErrorKind) String() string { return string(k) }

// KindOf classifies err. Unknown errors (including transient network and
// database failures) are KindInternal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthenticated
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrPreconditionFailed):
		return KindPreconditionFailed
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrAlreadyExists):
		return KindAlreadyExists
	}
	return KindInternal
}
