package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested quote, author or source was not found.
	// Use-case sentinels wrap it so handlers can map any of them to 404.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that the provided input is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedLanguage indicates a language code outside {en, ru}.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// ValidationError describes which field of a request failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
