// Package apperr classifies domain failures so transport layers can map them
// to status codes without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the category of a domain error.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindUnauthorized
	KindForbidden
	KindPreconditionFailed
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified domain error.
type Error struct {
	Kind    Kind
	Message string
	// Fields maps request field names to problems, for validation errors.
	Fields map[string]string
	// Status overrides the default HTTP status for the kind when non-zero.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind and message, so sentinel values
// declared with these constructors work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// WithStatus returns a copy of e that maps to the given HTTP status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

// NotFound reports a missing resource.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Validation builds a validation error. fields may be nil.
func Validation(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Unauthorized reports missing or invalid credentials.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Forbidden reports an authenticated caller acting outside its rights.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// PreconditionFailed reports a request that needs state the caller has not set up.
func PreconditionFailed(msg string) *Error {
	return &Error{Kind: KindPreconditionFailed, Message: msg}
}

// Conflict reports a clash with existing state, such as a duplicate key.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf classifies err. Unclassified errors are internal.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is classified as not found.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}
