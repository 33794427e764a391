package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNewKeepsErrorClass(t *testing.T) {
	err := New(ErrNotFound, "THING_NOT_FOUND", "Thing not found")
	wrapped := fmt.Errorf("lookup failed: %w", err)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Errorf("expected wrapped error to match ErrNotFound")
	}
	if !errors.Is(wrapped, err) {
		t.Errorf("expected wrapped error to match the AppError itself")
	}
	if errors.Is(wrapped, ErrValidation) {
		t.Errorf("did not expect wrapped error to match ErrValidation")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatalf("expected errors.As to find *AppError")
	}
	if appErr.Message != "Thing not found" {
		t.Errorf("expected message %q, got %q", "Thing not found", appErr.Message)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("body", "unexpected EOF")

	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected error to match ErrValidation")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected errors.As to find *ValidationError")
	}
	if ve.Field != "body" {
		t.Errorf("expected field %q, got %q", "body", ve.Field)
	}
	expected := "validation failed for field 'body': unexpected EOF"
	if ve.Error() != expected {
		t.Errorf("expected %q, got %q", expected, ve.Error())
	}

	noField := &ValidationError{Message: "bad"}
	if noField.Error() != "validation failed: bad" {
		t.Errorf("unexpected message without field: %q", noField.Error())
	}
}
