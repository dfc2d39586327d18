// Package errors provides a lightweight structured error type (AocBuildError)
// for category-based classification and retry semantics across the CLI and daemon.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of an aocbuild error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Filesystem and lookup errors
	CategoryIO       ErrorCategory = "io"
	CategoryNotFound ErrorCategory = "not_found"

	// Delegated toolchain and external system errors
	CategoryBuild   ErrorCategory = "build"
	CategoryNetwork ErrorCategory = "network"
	CategoryGit     ErrorCategory = "git"
	CategoryStorage ErrorCategory = "storage"

	// Runtime and infrastructure errors
	CategoryDaemon   ErrorCategory = "daemon"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// AocBuildError is a structured error with category, retryability, and context
type AocBuildError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for AocBuildError
type ContextFields map[string]any

// Error implements the error interface
func (e *AocBuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *AocBuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *AocBuildError) WithContext(key string, value any) *AocBuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new AocBuildError
func New(category ErrorCategory, severity ErrorSeverity, message string) *AocBuildError {
	return &AocBuildError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new AocBuildError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *AocBuildError {
	return &AocBuildError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// Retryable creates a new retryable AocBuildError
func Retryable(category ErrorCategory, severity ErrorSeverity, message string) *AocBuildError {
	return &AocBuildError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: true,
	}
}

// WrapRetryable creates a new retryable AocBuildError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *AocBuildError {
	return &AocBuildError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if abe, ok := err.(*AocBuildError); ok {
		return abe.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if abe, ok := err.(*AocBuildError); ok {
		return abe.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not an AocBuildError
func GetCategory(err error) ErrorCategory {
	if abe, ok := err.(*AocBuildError); ok {
		return abe.Category
	}
	return CategoryInternal
}
