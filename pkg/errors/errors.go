// Package errors provides structured error types for cmlayout.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Graph and codec failures use dedicated codes:
//   - NOT_IN_GRAPH: a connection or lookup referenced a component the graph does not own
//   - MALFORMED_RECORD: serialized text did not parse into the expected sections or fields
//   - INCONSISTENT_ADJACENCY: input and output wire counts disagree after bridging
//   - EMPTY_NEIGHBORHOOD: the optimizer picked a candidate with no occupied neighbor
//   - CYCLE_DETECTED: a traversal that requires an acyclic region found a cycle
//
// INCONSISTENT_ADJACENCY and EMPTY_NEIGHBORHOOD are diagnostics. They are
// returned as values for reporting and are never fatal to the operation that
// produced them.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedRecord, "component %d: expected 6 fields, got %d", i, n)
//	if errors.Is(err, errors.ErrCodeMalformedRecord) {
//	    // Handle parse failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedRecord, parseErr, "wire %d", i)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph errors
	ErrCodeNotInGraph            Code = "NOT_IN_GRAPH"
	ErrCodeInconsistentAdjacency Code = "INCONSISTENT_ADJACENCY"
	ErrCodeCycleDetected         Code = "CYCLE_DETECTED"

	// Codec errors
	ErrCodeMalformedRecord Code = "MALFORMED_RECORD"

	// Optimizer errors
	ErrCodeEmptyNeighborhood Code = "EMPTY_NEIGHBORHOOD"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// Only the outermost *Error is inspected, so a wrapped code does not leak
// through a differently coded wrapper.
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
