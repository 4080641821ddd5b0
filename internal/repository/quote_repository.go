package repository

import (
	"context"

	"bilingual-quotes/internal/domain/entity"
)

type QuoteRepository interface {
	// Search returns quotes whose text matches the query, most relevant first.
	// A nil lang searches both languages. Ties are broken by id descending.
	Search(ctx context.Context, text string, lang *entity.Language, limit int) ([]*entity.Quote, error)
	// ListByGroup returns every quote sharing the bilingual group id, ordered by id.
	ListByGroup(ctx context.Context, groupID int64) ([]*entity.Quote, error)
	// ListGrouped returns quotes that carry a group id, ordered by (group id, id).
	// Parameters:
	//   - offset: Number of rows to skip
	//   - limit: Maximum number of rows to return
	ListGrouped(ctx context.Context, offset, limit int) ([]*entity.Quote, error)
	// Get returns (nil, nil) if the quote is not found.
	Get(ctx context.Context, id int64) (*entity.Quote, error)
	CountQuotes(ctx context.Context) (int64, error)
	// CountGroups returns the number of distinct bilingual group ids.
	CountGroups(ctx context.Context) (int64, error)
}
