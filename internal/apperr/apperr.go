// Package apperr defines the error kinds the service surfaces to callers.
// Every operation either applies fully or fails with one of these; nothing is
// retried inside the service.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Validation: malformed or out-of-range input, caller can correct and retry.
	Validation Kind = iota + 1
	// Permission: role or ownership mismatch.
	Permission
	// NotFound: a referenced entity does not exist or is not visible.
	NotFound
	// InvalidState: the operation is illegal in the entity's current lifecycle
	// state, e.g. deciding a record that is no longer pending.
	InvalidState
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Permission:
		return "permission"
	case NotFound:
		return "not_found"
	case InvalidState:
		return "invalid_state"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind sentinels built with New.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or 0 when err is not an apperr.Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Sentinels for errors.Is checks in tests and handlers.
var (
	ErrValidation   = &Error{Kind: Validation}
	ErrPermission   = &Error{Kind: Permission}
	ErrNotFound     = &Error{Kind: NotFound}
	ErrInvalidState = &Error{Kind: InvalidState}
)
