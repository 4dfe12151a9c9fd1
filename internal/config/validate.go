package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors.
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidName     = errors.New("name contains invalid characters")
	ErrNameTooLong     = errors.New("name exceeds maximum length")
	ErrInvalidLogLevel = errors.New("log level must be 'debug', 'info', 'warn', or 'error'")
	ErrInvalidWidth    = errors.New("width out of range")
)

// Maximum name length for scenarios, handlers and receivers.
const MaxNameLength = 64

// Width bounds for trace output.
const (
	MinWidth = 20
	MaxWidth = 1000
)

// validNameRegex matches valid names: alphanumeric start, then alphanumeric,
// dash, underscore or dot.
var validNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidationError wraps a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateName validates a scenario, handler or receiver name. field names
// the value in the error.
func ValidateName(field, name string) error {
	if name == "" {
		return &ValidationError{
			Field:   field,
			Message: "cannot be empty",
			Err:     ErrEmptyName,
		}
	}

	if len(name) > MaxNameLength {
		return &ValidationError{
			Field:   field,
			Value:   name,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", MaxNameLength),
			Err:     ErrNameTooLong,
		}
	}

	if !validNameRegex.MatchString(name) {
		return &ValidationError{
			Field:   field,
			Value:   name,
			Message: "must start with alphanumeric and contain only alphanumeric, dash, underscore, or dot",
			Err:     ErrInvalidName,
		}
	}

	return nil
}

// ValidateLogLevel validates a log level string.
func ValidateLogLevel(level string) error {
	if !validLogLevels[strings.ToLower(level)] {
		return &ValidationError{
			Field:   "log.level",
			Value:   level,
			Message: "must be 'debug', 'info', 'warn', or 'error'",
			Err:     ErrInvalidLogLevel,
		}
	}
	return nil
}

// ValidateWidth validates the output wrap width.
func ValidateWidth(width int) error {
	if width < MinWidth || width > MaxWidth {
		return &ValidationError{
			Field:   "output.width",
			Value:   fmt.Sprintf("%d", width),
			Message: fmt.Sprintf("must be between %d and %d", MinWidth, MaxWidth),
			Err:     ErrInvalidWidth,
		}
	}
	return nil
}
