package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "query required",
			field:    "q",
			message:  "is required",
			expected: "validation error on field 'q': is required",
		},
		{
			name:     "limit out of range",
			field:    "limit",
			message:  "must be between 1 and 50",
			expected: "validation error on field 'limit': must be between 1 and 50",
		},
		{
			name:     "empty field name",
			field:    "",
			message:  "test message",
			expected: "validation error on field '': test message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Field: tt.field, Message: tt.message}
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_WithErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("parse request: %w", &ValidationError{Field: "lang", Message: "must be en or ru"})

	var validationErr *ValidationError
	assert.True(t, errors.As(wrapped, &validationErr))
	assert.Equal(t, "lang", validationErr.Field)
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))
}

func TestSentinelErrors_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "ErrNotFound", err: ErrNotFound, expected: "not found"},
		{name: "ErrInvalidInput", err: ErrInvalidInput, expected: "invalid input"},
		{name: "ErrUnsupportedLanguage", err: ErrUnsupportedLanguage, expected: "unsupported language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestSentinelErrors_Uniqueness(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
	assert.False(t, errors.Is(ErrInvalidInput, ErrUnsupportedLanguage))
	assert.False(t, errors.Is(ErrUnsupportedLanguage, ErrNotFound))
}
