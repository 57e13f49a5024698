package ramlerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the source could not be parsed as a RAML document.
	ErrParse = errors.New("parse error")

	// ErrInclude indicates an !include could not be resolved.
	ErrInclude = errors.New("include error")

	// ErrCircularInclude indicates a file (transitively) includes itself.
	ErrCircularInclude = errors.New("circular include")

	// ErrPathTraversal indicates an include pointing outside the document root was blocked.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrSource indicates an unsupported parse source.
	ErrSource = errors.New("invalid source")

	// ErrIdentifierCollision indicates two resources share a generated unique id.
	ErrIdentifierCollision = errors.New("identifier collision")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse a RAML document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IncludeError represents a failure to resolve an !include tag.
type IncludeError struct {
	// Include is the include target as written in the document
	Include string
	// From is the file or URL containing the include
	From string
	// IsCircular is true if the include chain loops back on itself
	IsCircular bool
	// IsPathTraversal is true if the include escapes the document root
	IsPathTraversal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *IncludeError) Error() string {
	msg := "include error"
	if e.IsCircular {
		msg = "circular include"
	} else if e.IsPathTraversal {
		msg = "path traversal detected"
	}
	if e.Include != "" {
		msg += ": " + e.Include
	}
	if e.From != "" {
		msg += " (from " + e.From + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IncludeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrInclude, and also ErrCircularInclude or ErrPathTraversal
// when the matching flag is set.
func (e *IncludeError) Is(target error) bool {
	switch target {
	case ErrInclude:
		return true
	case ErrCircularInclude:
		return e.IsCircular
	case ErrPathTraversal:
		return e.IsPathTraversal
	}
	return false
}

// SourceError reports a parse source of an unsupported kind.
type SourceError struct {
	// Source is the offending value
	Source any
	// Message describes what was expected
	Message string
}

// Error returns a human-readable error message.
func (e *SourceError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "invalid source"
	}
	if e.Source != nil {
		msg += fmt.Sprintf(" (got %T)", e.Source)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *SourceError) Is(target error) bool {
	return target == ErrSource
}

// CollisionError reports two resources that produced the same unique id.
type CollisionError struct {
	// ID is the shared identifier
	ID string
	// First is the full path of the resource that claimed the id first
	First string
	// Second is the full path of the colliding resource
	Second string
}

// Error returns a human-readable error message.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("identifier collision: %q is generated by both %s and %s", e.ID, e.First, e.Second)
}

// Is reports whether target matches this error type.
func (e *CollisionError) Is(target error) bool {
	return target == ErrIdentifierCollision
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "include_depth", "file_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
