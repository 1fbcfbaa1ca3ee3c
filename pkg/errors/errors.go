// Package errors provides structured error types for the xui engine.
//
// This package defines error codes and types that enable:
//   - A clear split between caller-input errors and internal defects
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Engine codes describe recoverable caller mistakes:
//   - DUPLICATE_NODE_ID: a node id is already present in the tree
//   - UNKNOWN_PARENT: a node references a parent that does not exist
//   - UNKNOWN_NODE: a query names a node that does not exist
//   - MALFORMED_STYLE_UNIT: a style value could not be parsed
//   - CYCLE_DETECTED: the tree could not be sequenced
//
// INTERNAL_ERROR marks broken invariants. The engine panics with an *Error
// carrying that code instead of returning it; see [Internal].
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNode, "node %q not found", id)
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Tree and cascade errors
	ErrCodeDuplicateNodeID    Code = "DUPLICATE_NODE_ID"
	ErrCodeUnknownParent      Code = "UNKNOWN_PARENT"
	ErrCodeUnknownNode        Code = "UNKNOWN_NODE"
	ErrCodeMalformedStyleUnit Code = "MALFORMED_STYLE_UNIT"
	ErrCodeCycleDetected      Code = "CYCLE_DETECTED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// Internal panics with an INTERNAL_ERROR. It is reserved for states that
// well-formed engine data can never reach, such as an edge whose child has no
// backing record.
func Internal(format string, args ...any) {
	panic(New(ErrCodeInternal, format, args...))
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
// For *Error types, returns the messages of the chain without code prefixes.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return e.Message
}

// IsCallerError reports whether err carries one of the recoverable
// caller-input codes. Errors without a code are not caller errors.
func IsCallerError(err error) bool {
	switch GetCode(err) {
	case ErrCodeDuplicateNodeID, ErrCodeUnknownParent, ErrCodeUnknownNode,
		ErrCodeMalformedStyleUnit, ErrCodeCycleDetected,
		ErrCodeInvalidInput, ErrCodeInvalidFormat,
		ErrCodeUnsupported:
		return true
	}
	return false
}
