package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error carrying a business status code.
// It implements the error interface, supports wrapping an underlying error,
// and cooperates with errors.Is/errors.As.
type CodeError struct {
	Code  int    // business status code
	Msg   string // human readable message
	cause error  // wrapped underlying error
}

// Error implements the standard error interface. When an underlying error is
// present the result is "msg: cause", otherwise just the message.
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap exposes the wrapped error to errors.Is/errors.As.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError with no underlying cause.
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a business code and message to an underlying error.
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode extracts the business code from an error chain, falling back to
// CodeServerBusy for plain errors.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business status codes.
const (
	CodeSuccess      = 1000 // success
	CodeInvalidParam = 1001 // malformed request parameters
	CodeServerBusy   = 1005 // internal error, retry later
	CodeNotFound     = 1008 // resource does not exist
	CodeNotJoined    = 1012 // connection has not joined the room yet
)

// Predefined instances, usable directly or with errors.Is.
var (
	ErrInvalidParam = New(CodeInvalidParam, "invalid request parameters")
	ErrServerBusy   = New(CodeServerBusy, "server busy")
	ErrNotFound     = New(CodeNotFound, "resource not found")
	ErrNotJoined    = New(CodeNotJoined, "connection has not joined the room")
)

// IsNotFound reports whether the error chain carries CodeNotFound.
func IsNotFound(err error) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == CodeNotFound
}
