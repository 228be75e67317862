// Package errors provides sentinel errors and exit code mapping for indgen.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes returned by the indgen process.
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitConfigurationError = 2
	ExitIOError            = 3
	ExitParseError         = 4
	ExitPoolExhausted      = 5
)

// DetailError captures structured error information for display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path the error relates to (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a configuration error with details.
func NewConfigurationError(message string, context map[string]string, hint string) error {
	return &DetailError{
		Type:    "configuration invalid",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   ErrConfiguration,
	}
}

// NewIOError creates an io error for the given path.
func NewIOError(path string, cause error) error {
	return &DetailError{
		Type:     "file access failed",
		Message:  cause.Error(),
		Location: path,
		Cause:    fmt.Errorf("%w: %w", ErrIO, cause),
	}
}

// NewParseError creates a parse error for the given path.
func NewParseError(path string, cause error) error {
	return &DetailError{
		Type:     "parse failed",
		Message:  cause.Error(),
		Location: path,
		Hint:     "Check that the file is valid JSON",
		Cause:    fmt.Errorf("%w: %w", ErrParse, cause),
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command layer already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrNotFound):
		return ExitConfigurationError
	case errors.Is(err, ErrIO):
		return ExitIOError
	case errors.Is(err, ErrParse):
		return ExitParseError
	case errors.Is(err, ErrPoolExhausted):
		return ExitPoolExhausted
	default:
		return ExitGeneralError
	}
}
