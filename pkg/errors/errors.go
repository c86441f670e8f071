// Package errors provides structured error types for the plotgrid engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Configuration errors (INVALID_CONFIGURATION) are raised while building a
// chart and are fatal: a misconfigured scale corrupts every downstream
// computation, so the engine never falls back silently. Per-query errors
// (OUT_OF_RANGE, UNINITIALIZED, DEGENERATE_DIMENSION) are raised at the call
// site and are recoverable — a draw loop is expected to skip the affected
// frame rather than crash the chart.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfiguration, "scale %q references itself", key)
//	if errors.Is(err, errors.ErrCodeInvalidConfiguration) {
//	    // Handle fatal configuration error
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// ErrCodeInvalidConfiguration marks fatal chart-construction errors:
	// self-referential scale parents, unresolvable parent chains, custom
	// distributions missing a forward or inverse transform.
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"

	// ErrCodeOutOfRange marks values a transform cannot accept, such as a
	// non-positive value fed to an unclamped logarithmic scale.
	ErrCodeOutOfRange Code = "OUT_OF_RANGE"

	// ErrCodeUninitialized marks position/value queries issued before a
	// scale's range has been resolved.
	ErrCodeUninitialized Code = "UNINITIALIZED"

	// ErrCodeDegenerateDimension marks pixel↔value conversions attempted
	// against a zero-sized plot dimension.
	ErrCodeDegenerateDimension Code = "DEGENERATE_DIMENSION"

	// ErrCodeUnknownScale marks lookups of scale keys that were never
	// registered.
	ErrCodeUnknownScale Code = "UNKNOWN_SCALE"

	// ErrCodeInternal marks unexpected internal errors.
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

// IsFatal reports whether err is a configuration error that must abort chart
// construction, as opposed to a per-query error the caller may recover from.
func IsFatal(err error) bool {
	return Is(err, ErrCodeInvalidConfiguration)
}
