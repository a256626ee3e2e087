package sitesignal

import (
	"errors"
	"fmt"
)

// Application error codes. These map failure kinds to boundary behavior:
// EINVALID covers unparseable input (HTTP 400), EUNAUTHORIZED covers a
// missing or wrong secret (HTTP 401), ENOTFOUND covers empty lookup
// results, and EUNAVAILABLE covers unreachable collaborators (geocoder,
// NLP model, target site).
const (
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	EUNAUTHORIZED = "unauthorized"
	EUNAVAILABLE  = "unavailable"
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description safe to show to callers.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sitesignal error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an *Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of the error, if available.
// Returns an empty string for nil errors and EINTERNAL for non-application
// errors.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if available.
// Returns an empty string for nil errors and a generic message for
// non-application errors, whose details should not leak to callers.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}
