package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into the store's error taxonomy.
type Kind int

const (
	KindInternal     Kind = iota // Unexpected failure (store unavailable, bug)
	KindNotFound                 // Entity absent
	KindConflict                 // Uniqueness/duplicate violation
	KindInvalidState             // Business rule violation
	KindUnauthorized             // Missing/invalid credentials or role
)

// Error carries a kind plus a caller-facing message. Business-rule errors
// (NotFound/Conflict/InvalidState/Unauthorized) are expected outcomes, not
// exceptional conditions; only Internal wraps an underlying cause.
type Error struct {
	Kind    Kind   // Error classification
	Message string // Message safe to surface to the caller
	Err     error  // Underlying cause, only set for Internal
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports an absent entity.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict reports a duplicate/uniqueness violation.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// InvalidState reports a business rule violation.
func InvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

// InvalidStatef is InvalidState with formatting.
func InvalidStatef(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized reports missing or invalid credentials.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Internal wraps an unexpected failure. The message shown to callers is fixed;
// the cause stays server-side.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error.", Err: err}
}

// KindOf extracts the kind from an error, defaulting to Internal for anything
// outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message for an error. Errors outside the
// taxonomy degrade to the fixed internal message, never raw error text.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error."
}

// HTTPStatus maps an error kind to the status code the API surfaces.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidState:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
