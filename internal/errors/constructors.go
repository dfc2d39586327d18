package errors

import "fmt"

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *AocBuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *AocBuildError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *AocBuildError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Discovery and build errors

// RootListError reports a repository root that cannot be listed. Never retried.
func RootListError(root string, cause error) *AocBuildError {
	return Wrap(cause, CategoryIO, SeverityError, "cannot list repository root").
		WithContext("root", root)
}

// UnitNotFound reports a build requested by a name that matches no discovered
// unit. No fuzzy matching; no build action is performed.
func UnitNotFound(name string) *AocBuildError {
	return New(CategoryNotFound, SeverityError, fmt.Sprintf("no such build unit %q", name)).
		WithContext("unit", name)
}

// DelegatedBuildFailed wraps an opaque failure from a per-directory build-unit
// definition. The cause is surfaced unmodified; the orchestrator never
// inspects or recovers from it.
func DelegatedBuildFailed(unit string, cause error) *AocBuildError {
	return Wrap(cause, CategoryBuild, SeverityError, "delegated build failed").
		WithContext("unit", unit)
}

// ArtifactError reports a failure preparing or locating a build artifact.
func ArtifactError(operation string, cause error) *AocBuildError {
	return Wrap(cause, CategoryIO, SeverityError, "artifact operation failed").
		WithContext("operation", operation)
}

// Network errors

func FetchError(url string, cause error) *AocBuildError {
	return WrapRetryable(cause, CategoryNetwork, SeverityWarning, "puzzle input fetch failed").
		WithContext("url", url)
}

// Git errors

func GitError(operation string, cause error) *AocBuildError {
	return Wrap(cause, CategoryGit, SeverityWarning, "git operation failed").
		WithContext("operation", operation)
}

// Storage errors

func StorageError(operation string, cause error) *AocBuildError {
	return Wrap(cause, CategoryStorage, SeverityError, "history store operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *AocBuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
