// Package errors provides structured error types for roomgen.
//
// Every fallible operation in the geometry and placement packages reports
// failures through [*Error] values carrying a machine-readable [Code]. The
// codes are shared by the CLI and the HTTP server so both surfaces can react
// to the same failure the same way.
//
// # Error Codes
//
// Codes fall into three groups:
//   - Contract violations raised by the core: SIZE_MISMATCH, INVALID_SIZE,
//     PLACEMENT_ERROR, NEIGHBOUR_NOT_FOUND. These indicate a caller skipped a
//     precondition check and are not meant to be recovered from.
//   - Input validation failures: INVALID_*.
//   - Lookup and infrastructure failures: NOT_FOUND, INTERNAL_ERROR, UNSUPPORTED.
//
// "No valid placement" is not an error. Fitting operations return an empty
// candidate slice instead.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSizeMismatch, "cannot combine %v with %v", a, b)
//	if errors.Is(err, errors.ErrCodeSizeMismatch) {
//	    // programmer error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "render dungeon %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Core contract violations
	ErrCodeSizeMismatch      Code = "SIZE_MISMATCH"
	ErrCodeInvalidSize       Code = "INVALID_SIZE"
	ErrCodePlacement         Code = "PLACEMENT_ERROR"
	ErrCodeNeighbourNotFound Code = "NEIGHBOUR_NOT_FOUND"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidDensity Code = "INVALID_DENSITY"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
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

// IsContractViolation reports whether err signals a skipped precondition
// check inside the core rather than bad user input.
func IsContractViolation(err error) bool {
	switch GetCode(err) {
	case ErrCodeSizeMismatch, ErrCodePlacement, ErrCodeNeighbourNotFound:
		return true
	}
	return false
}
