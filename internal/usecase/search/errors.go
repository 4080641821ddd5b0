// Package search implements bilingual quote search: query expansion through
// an optional translator, concurrent per-variant store lookups, and pairing of
// the merged candidates. Store failures degrade to an empty result.
package search

import (
	"errors"
	"fmt"

	"bilingual-quotes/internal/domain/entity"
)

// Sentinel errors for search use case operations.
var (
	// ErrInvalidQuery indicates an empty or blank query text.
	ErrInvalidQuery = errors.New("invalid query: must not be empty")

	// ErrInvalidLimit indicates a limit below 1.
	ErrInvalidLimit = errors.New("invalid limit: must be at least 1")

	// ErrInvalidOffset indicates a negative listing offset.
	ErrInvalidOffset = errors.New("invalid offset: cannot be negative")

	// ErrInvalidLanguage indicates a language filter other than en or ru.
	ErrInvalidLanguage = errors.New("invalid language: must be en or ru")

	// ErrInvalidQuoteID indicates a non-positive quote id.
	ErrInvalidQuoteID = errors.New("invalid quote ID")

	// ErrQuoteNotFound indicates that the requested quote does not exist.
	ErrQuoteNotFound = fmt.Errorf("quote %w", entity.ErrNotFound)
)
