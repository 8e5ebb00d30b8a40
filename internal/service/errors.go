package service

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"casedesk/internal/storage"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found or the
	// caller may not see it. The two are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
	// ErrLimitExceeded is returned when a case would exceed its document
	// count or total size limit.
	ErrLimitExceeded = errors.New("case limit exceeded")
	// ErrNoExtractableText is returned when a file yields no readable text.
	ErrNoExtractableText = errors.New("could not extract readable content")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets callers match validation failures with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// validationError converts an ozzo-validation result into a *ValidationError
// naming the first failing field in alphabetical order.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &ValidationError{Field: "request", Message: err.Error()}
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return &ValidationError{Field: fields[0], Message: errs[fields[0]].Error()}
}

// storeError maps storage sentinels to service sentinels.
func storeError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrLimitExceeded):
		return ErrLimitExceeded
	default:
		return WrapError(err, msg)
	}
}
