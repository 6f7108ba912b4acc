// Package domainerrors carries the error taxonomy services expose to callers.
//
// Stores return sentinel facts (pkg/platform/sentinel); services translate those into
// coded errors here. Callers branch on the Code, never on the message.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain failure.
type Code string

const (
	// CodeInvalidOperation: the action is not allowed in the current state
	// (self-request, acting on an already resolved request).
	CodeInvalidOperation Code = "invalid_operation"
	// CodeConflict: a live request or friendship already exists for the pair.
	CodeConflict Code = "conflict"
	// CodeExpired: the request is past its time-to-live.
	CodeExpired Code = "expired"
	// CodeNotFound: a referenced entity (usually a user) does not exist.
	CodeNotFound     Code = "not_found"
	CodeInvalidInput Code = "invalid_input"
	CodeTimeout      Code = "timeout"
	CodeInternal     Code = "internal_error"
)

// Error is a coded domain error. Err keeps the underlying cause for errors.Is/As.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the outermost *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// HasCode reports whether the outermost domain error in err's chain carries code.
func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// Is is an alias of HasCode kept for call-site readability in tests.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// HTTPStatus maps a code to the status the transport layer should use.
func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalidOperation, CodeExpired, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
