// Package errors provides structured error types for folio.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the site and the JSON API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages for degraded page sections
//
// # Error Codes
//
// Codes map onto the failure modes of the GitHub client and the gateway:
//   - NOT_FOUND: the handle does not exist upstream
//   - FORBIDDEN: GitHub answered 403 (usually the unauthenticated rate limit)
//   - RATE_LIMITED: GitHub answered 429
//   - UPSTREAM_ERROR: any other non-2xx answer, see [UpstreamError]
//   - TIMEOUT, NETWORK_ERROR: transport level failures
//   - INVALID_TARGET, INVALID_INPUT: rejected caller input
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidTarget, "unsupported scheme %q", scheme)
//	if errors.Is(err, errors.ErrCodeInvalidTarget) {
//	    // Render the "no target" message
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
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
	ErrCodeInvalidTarget Code = "INVALID_TARGET"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Upstream answers
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeForbidden   Code = "FORBIDDEN"
	ErrCodeRateLimited Code = "RATE_LIMITED"
	ErrCodeUpstream    Code = "UPSTREAM_ERROR"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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
// It unwraps the error chain looking for an *Error or a coded error type
// with a matching code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// MaxExcerpt bounds the body excerpt carried by an [UpstreamError].
const MaxExcerpt = 120

// UpstreamError describes a non-2xx answer that has no dedicated code.
type UpstreamError struct {
	Status  int    // HTTP status code returned upstream
	Excerpt string // Leading part of the response body, at most MaxExcerpt characters
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Excerpt != "" {
		return fmt.Sprintf("github api error: %d - %s", e.Status, e.Excerpt)
	}
	return fmt.Sprintf("github api error: %d", e.Status)
}

// Code returns the error code for this error type.
func (e *UpstreamError) Code() Code {
	return ErrCodeUpstream
}
