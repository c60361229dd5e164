// Package errors provides structured error types for graphmapper.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the session core and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The four kinds a session can surface are:
//   - VALIDATION: empty or malformed user input; state is not mutated
//   - MALFORMED_ROW: a bad CSV row on import; the remaining rows still apply
//   - IO_ERROR: an autosave or export write failed; editing may continue
//   - RENDER_ERROR: the external renderer failed; DOT and CSV are still written
//
// # Usage
//
//	err := errors.New(errors.ErrCodeValidation, "entity name cannot be empty")
//	if errors.Is(err, errors.ErrCodeValidation) {
//	    // Report to the user, nothing changed
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "autosave %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeValidation    Code = "VALIDATION"
	ErrCodeMalformedRow  Code = "MALFORMED_ROW"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Output errors
	ErrCodeIO     Code = "IO_ERROR"
	ErrCodeRender Code = "RENDER_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by error types that carry a code without being *Error.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a coded error
// (such as *RowError) with a matching code. The outermost code wins.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
// For joined errors the first coded error wins.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				if code := GetCode(inner); code != "" {
					return code
				}
			}
			return ""
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RowError describes a CSV row that could not be applied.
// Line is the 1-based line number in the source file, header included.
type RowError struct {
	Line   int
	Reason string
}

// MalformedRow creates a RowError for the given line.
func MalformedRow(line int, format string, args ...any) *RowError {
	return &RowError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", ErrCodeMalformedRow, e.Line, e.Reason)
}

// Code returns the error code for this error type.
func (e *RowError) Code() Code {
	return ErrCodeMalformedRow
}
