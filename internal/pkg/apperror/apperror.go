package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindInvalidState     Kind = "INVALID_STATE"
	KindForbidden        Kind = "FORBIDDEN"
	KindValidation       Kind = "VALIDATION_ERROR"
	KindInvalidSignature Kind = "INVALID_SIGNATURE"
	KindExternalService  Kind = "EXTERNAL_SERVICE_ERROR"
	KindConflict         Kind = "CONFLICT"
	KindInternal         Kind = "INTERNAL"
)

// Error is the typed failure returned across the service boundary.
// Message is safe to show to API callers; Err keeps the cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error         { return New(KindNotFound, message) }
func InvalidState(message string) *Error     { return New(KindInvalidState, message) }
func Forbidden(message string) *Error        { return New(KindForbidden, message) }
func Validation(message string) *Error       { return New(KindValidation, message) }
func InvalidSignature(message string) *Error { return New(KindInvalidSignature, message) }
func Conflict(message string) *Error         { return New(KindConflict, message) }

func ExternalService(message string, err error) *Error {
	return Wrap(KindExternalService, message, err)
}

func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// MessageOf returns the public message, hiding internal causes.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
