package domain

import (
	"errors"
	"fmt"
)

// Error codes. Handlers map each to an HTTP status.
const (
	EINVALID     = "invalid"
	EFORBIDDEN   = "forbidden"
	ENOTFOUND    = "not_found"
	ERATELIMIT   = "rate_limit"
	EUNAVAILABLE = "unavailable"
	EINTERNAL    = "internal"
	ENOTIMPL     = "not_impl"
)

// genericMessage replaces the message of internal and unclassified errors
// before it reaches a client.
const genericMessage = "An internal error occurred. Please try again later."

// Error is a classified failure. Message is safe to show to users; Op and Err
// are for logs only.
type Error struct {
	Code    string
	Op      string // e.g. "skipapi.ListSkips"
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PublicMessage is the text a client may see. Internal errors never expose
// their message.
func (e *Error) PublicMessage() string {
	if e.Code == EINTERNAL || e.Message == "" {
		return genericMessage
	}
	return e.Message
}

// AsError returns the first *Error in err's chain. Anything else is reported
// as an internal error wrapping err.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: EINTERNAL, Err: err}
}

// ErrorCode returns the code of err, EINTERNAL for unclassified errors and ""
// for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	return AsError(err).Code
}

func Invalid(op, message string) *Error {
	return &Error{Code: EINVALID, Op: op, Message: message}
}

func Forbidden(op, message string) *Error {
	return &Error{Code: EFORBIDDEN, Op: op, Message: message}
}

// NotFound reports a missing resource, e.g. NotFound(op, "step", "pay-later").
func NotFound(op, resource, id string) *Error {
	return &Error{Code: ENOTFOUND, Op: op, Message: fmt.Sprintf("No %s named %q.", resource, id)}
}

// RateLimit reports a client that exhausted its request budget.
func RateLimit(op string) *Error {
	return &Error{Code: ERATELIMIT, Op: op, Message: "Too many requests. Please try again later."}
}

func Internal(err error, op, message string) *Error {
	return &Error{Code: EINTERNAL, Op: op, Message: message, Err: err}
}

// Unavailable wraps a failure of an upstream dependency.
func Unavailable(err error, op, message string) *Error {
	return &Error{Code: EUNAVAILABLE, Op: op, Message: message, Err: err}
}

// NotImplemented marks routes that exist but are served by another system.
func NotImplemented(op, message string) *Error {
	return &Error{Code: ENOTIMPL, Op: op, Message: message}
}

// ValidationError carries per-field messages for a rejected form.
type ValidationError struct {
	Op     string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid fields %v", e.Op, e.Fields)
}

// NewValidationError reports a single invalid field.
func NewValidationError(op, field, message string) *ValidationError {
	return &ValidationError{Op: op, Fields: map[string]string{field: message}}
}
