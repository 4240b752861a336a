package engine

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes engine errors.
type ErrorKind string

const (
	// KindInvalidSessionID indicates a session id that is not a positive integer.
	KindInvalidSessionID ErrorKind = "INVALID_SESSION_ID"

	// KindInvalidHistoryID indicates a malformed history id token.
	KindInvalidHistoryID ErrorKind = "INVALID_HISTORY_ID"

	// KindEmptyCommand indicates nothing but whitespace after the history id.
	KindEmptyCommand ErrorKind = "EMPTY_COMMAND"

	// KindUnknownSession indicates the referenced session does not exist.
	KindUnknownSession ErrorKind = "UNKNOWN_SESSION"

	// KindStoreUnavailable indicates the store could not commit the operation.
	KindStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
)

// Error is the single error type returned by engine operations.
type Error struct {
	// Kind identifies the error category.
	Kind ErrorKind

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Sentinels for errors.Is. Matching compares Kind only.
var (
	ErrInvalidSessionID = &Error{Kind: KindInvalidSessionID}
	ErrInvalidHistoryID = &Error{Kind: KindInvalidHistoryID}
	ErrEmptyCommand     = &Error{Kind: KindEmptyCommand}
	ErrUnknownSession   = &Error{Kind: KindUnknownSession}
	ErrStoreUnavailable = &Error{Kind: KindStoreUnavailable}
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the ErrorKind of err, or "" if err is not an engine error.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsTransient reports whether retrying the same call could succeed.
// Every other kind is permanent for the same input.
func IsTransient(err error) bool {
	return KindOf(err) == KindStoreUnavailable
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func storeUnavailable(op string, err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: op, Err: err}
}
