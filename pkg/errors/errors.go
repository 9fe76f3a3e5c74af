// Package errors provides structured error types for repograph.
//
// The layout and rendering core never fails: degenerate geometry, dangling
// edges and empty graphs are handled silently. Errors only surface at the
// edges of the system (reading graph files, decoding rule files, loading
// configuration, encoding artifacts), and those edges use the codes below so
// the CLI can print a short message and callers can branch on the category.
//
// # Error Codes
//
//   - INVALID_*: Input validation failures
//   - FILE_NOT_FOUND: Missing input files
//   - RENDER_FAILED: A sink could not encode its output
//   - INTERNAL_ERROR: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", id)
//	if errors.Is(err, errors.ErrCodeInvalidGraph) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidRules  Code = "INVALID_RULES"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Output errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"

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

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without code prefixes. Nested *Error
// causes are flattened the same way.
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

// hints suggests a next step per code.
var hints = map[Code]string{
	ErrCodeInvalidGraph:  "node ids must be non-empty and unique",
	ErrCodeInvalidFormat: "valid formats are png, svg, dot, graphviz and json",
	ErrCodeInvalidRules:  "each [[rule]] needs a known category and only id_contains, label_contains, label_equals or label_suffix keys",
	ErrCodeInvalidConfig: "check repograph.yaml and REPOGRAPH_* environment variables",
	ErrCodeFileNotFound:  "check the path; graph files are the JSON result of an analysis job",
}

// Hint returns a short suggestion for fixing err, or "" if there is none.
func Hint(err error) string {
	return hints[GetCode(err)]
}
