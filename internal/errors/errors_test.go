package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestAocBuildError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AocBuildError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryIO, SeverityError, "cannot list repository root"),
			expected: "io (error): cannot list repository root: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestAocBuildError_WithContext(t *testing.T) {
	err := New(CategoryBuild, SeverityError, "delegated build failed").
		WithContext("unit", "day07").
		WithContext("trigger", "manual")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}

	if err.Context["unit"] != "day07" {
		t.Errorf("Context[unit] = %v, want day07", err.Context["unit"])
	}

	if err.Context["trigger"] != "manual" {
		t.Errorf("Context[trigger] = %v, want manual", err.Context["trigger"])
	}
}

func TestIsCategory(t *testing.T) {
	ioErr := New(CategoryIO, SeverityError, "io error")
	buildErr := New(CategoryBuild, SeverityError, "build error")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"io error matches io category", ioErr, CategoryIO, true},
		{"io error doesn't match build category", ioErr, CategoryBuild, false},
		{"build error matches build category", buildErr, CategoryBuild, true},
		{"standard error doesn't match any category", standardErr, CategoryIO, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsCategory(test.err, test.category)
			if result != test.expected {
				t.Errorf("IsCategory() = %v, want %v", result, test.expected)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	retryableErr := Retryable(CategoryNetwork, SeverityWarning, "timeout")
	nonRetryableErr := New(CategoryConfig, SeverityFatal, "invalid")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"retryable error", retryableErr, true},
		{"non-retryable error", nonRetryableErr, false},
		{"standard error", standardErr, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsRetryable(test.err)
			if result != test.expected {
				t.Errorf("IsRetryable() = %v, want %v", result, test.expected)
			}
		})
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("UnitNotFound", func(t *testing.T) {
		err := UnitNotFound("day99")
		if err.Category != CategoryNotFound {
			t.Errorf("Category = %v, want %v", err.Category, CategoryNotFound)
		}
		if err.Context["unit"] != "day99" {
			t.Errorf("Context[unit] = %v, want day99", err.Context["unit"])
		}
	})

	t.Run("DelegatedBuildFailed", func(t *testing.T) {
		cause := fmt.Errorf("exit status 1")
		err := DelegatedBuildFailed("day07", cause)
		if err.Category != CategoryBuild {
			t.Errorf("Category = %v, want %v", err.Category, CategoryBuild)
		}
		if !stdErrors.Is(err, cause) {
			t.Errorf("Cause should match wrapped cause: %v", cause)
		}
		if err.Context["unit"] != "day07" {
			t.Errorf("Context[unit] = %v, want day07", err.Context["unit"])
		}
	})

	t.Run("FetchError", func(t *testing.T) {
		cause := fmt.Errorf("timeout")
		err := FetchError("https://adventofcode.com/2020/day/3/input", cause)
		if err.Category != CategoryNetwork {
			t.Errorf("Category = %v, want %v", err.Category, CategoryNetwork)
		}
		if !err.Retryable {
			t.Error("FetchError should be retryable")
		}
	})

	t.Run("RootListError", func(t *testing.T) {
		cause := fmt.Errorf("permission denied")
		err := RootListError("/repo", cause)
		if err.Category != CategoryIO {
			t.Errorf("Category = %v, want %v", err.Category, CategoryIO)
		}
		if err.Retryable {
			t.Error("RootListError should not be retryable")
		}
	})
}
