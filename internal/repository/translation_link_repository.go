package repository

import (
	"context"

	"bilingual-quotes/internal/domain/entity"
)

// TranslationLinkRepository reads the legacy per-quote translation links.
type TranslationLinkRepository interface {
	// GetLinkedQuote returns the quote linked to quoteID in the target language,
	// following links in either direction. Returns (nil, nil) if there is no link.
	GetLinkedQuote(ctx context.Context, quoteID int64, target entity.Language) (*entity.Quote, error)
}
