// Package errors provides a lightweight structured error type (OnboardError)
// for category-based classification in the CLI and file adapters.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of an error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Repository and filesystem errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategorySandbox    ErrorCategory = "sandbox"

	// Analysis and rendering errors
	CategoryAnalysis ErrorCategory = "analysis"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// OnboardError is a structured error with category, severity, and context
type OnboardError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for OnboardError
type ContextFields map[string]any

// Error implements the error interface
func (e *OnboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *OnboardError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *OnboardError) WithContext(key string, value any) *OnboardError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new OnboardError
func New(category ErrorCategory, severity ErrorSeverity, message string) *OnboardError {
	return &OnboardError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new OnboardError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *OnboardError {
	return &OnboardError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// SandboxError creates an error for a path escaping the repository root.
func SandboxError(message string) *OnboardError {
	return &OnboardError{
		Category: CategorySandbox,
		Severity: SeverityFatal,
		Message:  message,
	}
}

// ValidationError creates a new validation error
func ValidationError(message string) *OnboardError {
	return &OnboardError{
		Category: CategoryValidation,
		Severity: SeverityWarning,
		Message:  message,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if oe, ok := err.(*OnboardError); ok {
		return oe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns
// CategoryInternal if it is not an OnboardError
func GetCategory(err error) ErrorCategory {
	if oe, ok := err.(*OnboardError); ok {
		return oe.Category
	}
	return CategoryInternal
}
