package errors

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Error codes for categorizing errors
const (
	ErrConfig   = "CONFIG"
	ErrFetch    = "FETCH"     // transport failure talking to the backend
	ErrDecode   = "DECODE"    // backend answered with a body we could not parse
	ErrStatus   = "STATUS"    // backend answered with a non-2xx status
	ErrNotFound = "NOT_FOUND" // backend has no such host
	ErrTTY      = "TTY"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrFetch code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrFetch,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Summary returns a single-line form of the error for status bars and logs.
func (e *Error) Summary() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + Summary(e.Cause)
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var hdErr *Error
	if errors.As(err, &hdErr) {
		return hdErr.Code == code
	}
	return false
}

// Summary returns the single-line form of any error. Structured errors use
// their Summary, anything else falls back to Error(). Errors combined with
// multierr are summarized one by one and joined with "; ".
func Summary(err error) string {
	if err == nil {
		return ""
	}
	if errs := multierr.Errors(err); len(errs) > 1 {
		parts := make([]string, 0, len(errs))
		for _, e := range errs {
			parts = append(parts, Summary(e))
		}
		return strings.Join(parts, "; ")
	}
	var hdErr *Error
	if errors.As(err, &hdErr) {
		return hdErr.Summary()
	}
	return err.Error()
}
