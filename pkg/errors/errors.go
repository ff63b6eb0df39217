package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AutomationError reports a failed call into the office application's
// automation channel. Channel names the adapter ("com", "applescript") and
// Operation the call that failed ("list_addins", "open_file", ...).
type AutomationError struct {
	Channel   string
	Operation string
	Err       error
}

// NewAutomationError constructs an AutomationError.
func NewAutomationError(channel, operation string, err error) error {
	return &AutomationError{Channel: channel, Operation: operation, Err: err}
}

func (e *AutomationError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Channel != "" && e.Operation != "":
		return fmt.Sprintf("automation error [%s] %s: %v", e.Channel, e.Operation, e.Err)
	case e.Operation != "":
		return fmt.Sprintf("automation error %s: %v", e.Operation, e.Err)
	default:
		return fmt.Sprintf("automation error: %v", e.Err)
	}
}

// Unwrap exposes the root error.
func (e *AutomationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
