// Package domainerr defines the typed error taxonomy surfaced by lending
// operations. Every expected failure is one of four kinds so the presentation
// layer can map it to an HTTP status without inspecting error text.
package domainerr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind int

const (
	// KindInternal is an unexpected failure (database, connectivity).
	KindInternal Kind = iota
	// KindValidation is a bad input shape or range.
	KindValidation
	// KindNotFound is an unknown product, loan, or borrower.
	KindNotFound
	// KindConflict is a status-guard violation, e.g. approving a non-pending
	// loan or a duplicate active loan.
	KindConflict
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a domain error with a kind and a human-readable message.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// New creates a domain error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Newf creates a domain error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// Validation creates a validation error.
func Validation(format string, args ...any) *Error {
	return Newf(KindValidation, format, args...)
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return Newf(KindNotFound, format, args...)
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *Error {
	return Newf(KindConflict, format, args...)
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) *Error {
	return Wrap(KindInternal, msg, err)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Kind returns the error's kind.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message without the wrapped cause.
func (e *Error) Message() string { return e.msg }

// KindOf returns the kind of err. Errors that are not domain errors, wrapped
// or not, classify as internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
