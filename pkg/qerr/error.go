package qerr

import (
	"fmt"
	"strings"
)

// Error is a structured query-construction error with a machine-readable code,
// a human-readable message, optional diagnostic details (for example the valid
// property names of a node kind) and an optional wrapped cause.
type Error struct {
	code    Code
	message string
	details []string
	cause   error
}

// New creates an Error without a cause.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap creates an Error that wraps a cause for logging/unwrapping.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{code: code, message: message, cause: cause}
}

// WithDetails returns a copy of e carrying the given diagnostic details.
func (e *Error) WithDetails(details ...string) *Error {
	cp := *e
	cp.details = append([]string(nil), details...)
	return &cp
}

// Error implements the error interface. Includes details and the cause for log output.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.code, e.message)
	if len(e.details) > 0 {
		fmt.Fprintf(&b, " (valid: %s)", strings.Join(e.details, ", "))
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

// Unwrap returns the wrapped cause for errors.Is/errors.As chaining.
func (e *Error) Unwrap() error { return e.cause }

// Code returns the machine-readable error code.
func (e *Error) Code() Code { return e.code }

// Message returns the human-readable message.
func (e *Error) Message() string { return e.message }

// Details returns the diagnostic details attached to the error, if any.
func (e *Error) Details() []string { return e.details }
