package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"casedesk/internal/config"
	"casedesk/internal/service"
	"casedesk/internal/storage"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// testContext returns a context for testing.
// The default logger is already set to discard in init().
func testContext() context.Context {
	return context.Background()
}

func strPtr(s string) *string {
	return &s
}

func testLimits() config.Limits {
	return config.DefaultLimits()
}

func activeCase(id, owner string) *storage.CaseRecord {
	return &storage.CaseRecord{
		ID:        id,
		OwnerID:   owner,
		Name:      "Smith v. Jones",
		IsActive:  true,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrNotFound)
}

func isValidation(field string) func(error) bool {
	return func(err error) bool {
		var validationErr *service.ValidationError
		return errors.As(err, &validationErr) && validationErr.Field == field
	}
}
