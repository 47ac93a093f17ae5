package dongchedi

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// ENAVIGATION, EFETCHTIMEOUT and ESTRUCTURE are fatal to a single parse
// request: they abort the request and are surfaced to the caller with the
// URL and stage attached to the message. Non-fatal extraction and
// translation problems are never raised as errors; they accumulate on the
// record as ExtractionErrors instead.
const (
	EINVALID      = "invalid"            // validation failed
	EINTERNAL     = "internal"           // internal error
	ENOTFOUND     = "not_found"          // entity does not exist
	ENAVIGATION   = "navigation"         // non-2xx response or network failure
	EFETCHTIMEOUT = "fetch_timeout"      // content-ready signal never appeared
	ESTRUCTURE    = "structure_mismatch" // expected page region absent from DOM
)

// Error represents an application-specific error. Application errors can
// be unwrapped by the caller to extract the machine-readable code.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("dongchedi error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
