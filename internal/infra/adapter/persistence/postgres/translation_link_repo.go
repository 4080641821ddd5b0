package postgres

import (
	"context"

	"bilingual-quotes/internal/domain/entity"
	"bilingual-quotes/internal/repository"
)

type TranslationLinkRepo struct {
	db DBTX
}

func NewTranslationLinkRepo(db DBTX) repository.TranslationLinkRepository {
	return &TranslationLinkRepo{db: db}
}

// GetLinkedQuote follows quote_translations in either direction and returns the
// oldest link whose other end is in the target language.
func (repo *TranslationLinkRepo) GetLinkedQuote(ctx context.Context, quoteID int64, target entity.Language) (*entity.Quote, error) {
	query := `
SELECT ` + quoteColumns + `
FROM quote_translations t
INNER JOIN quotes q ON q.id = CASE WHEN t.source_quote_id = $1 THEN t.target_quote_id ELSE t.source_quote_id END
` + quoteJoins + `
WHERE (t.source_quote_id = $1 OR t.target_quote_id = $1)
  AND q.id <> $1
  AND q.language = $2
ORDER BY t.id
LIMIT 1`

	return queryOne(ctx, repo.db, "GetLinkedQuote", query, quoteID, string(target))
}
