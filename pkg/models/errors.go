package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a value violates a field constraint
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupported is returned when an operation is not available on a variant
	ErrUnsupported = errors.New("unsupported operation")
)

// ValidationError describes a rejected argument or operation
type ValidationError struct {
	Field   string
	Variant string
	Message string
	cause   error
}

func (e *ValidationError) Error() string {
	if e.Variant != "" {
		return fmt.Sprintf("%s: %s", e.Variant, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

func invalid(variant, field, format string, args ...interface{}) error {
	return &ValidationError{
		Field:   field,
		Variant: variant,
		Message: fmt.Sprintf(format, args...),
		cause:   ErrInvalidArgument,
	}
}

func unsupported(variant, field, hint string) error {
	return &ValidationError{
		Field:   field,
		Variant: variant,
		Message: fmt.Sprintf("%s is not supported on %s; use %s", field, variant, hint),
		cause:   ErrUnsupported,
	}
}

// checkRange mirrors the messages callers see for numeric bounds.
func checkRange(variant, field string, value, min, max int) error {
	if value < min || value > max {
		return invalid(variant, field, "%s may not be less than %d or larger than %d", field, min, max)
	}
	return nil
}

func checkMin(variant, field string, value, min int) error {
	if value < min {
		return invalid(variant, field, "%s may not be less than %d", field, min)
	}
	return nil
}

func checkNotEmpty(variant, field, value string) error {
	if value == "" {
		return invalid(variant, field, "%s may not be empty", field)
	}
	return nil
}

func checkColor(variant, field string, c Color) error {
	if c.IsZero() {
		return invalid(variant, field, "%s may not be null", field)
	}
	return nil
}

// sticky keeps the first failure reported by a fluent setter.
type sticky struct {
	err error
}

func (s *sticky) record(err error) bool {
	if err == nil {
		return true
	}
	if s.err == nil {
		s.err = err
	}
	return false
}

// Err returns the first error recorded by a setter, if any.
func (s *sticky) Err() error {
	return s.err
}
