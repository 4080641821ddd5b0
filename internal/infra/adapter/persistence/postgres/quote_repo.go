package postgres

import (
	"context"
	"fmt"

	"bilingual-quotes/internal/domain/entity"
	"bilingual-quotes/internal/repository"
)

type QuoteRepo struct {
	db           DBTX
	queryBuilder *QuoteQueryBuilder
}

func NewQuoteRepo(db DBTX) repository.QuoteRepository {
	return &QuoteRepo{
		db:           db,
		queryBuilder: NewQuoteQueryBuilder(),
	}
}

func (repo *QuoteRepo) Search(ctx context.Context, text string, lang *entity.Language, limit int) ([]*entity.Quote, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(text, lang, "q")
	args = append(args, limit)

	query := fmt.Sprintf(`
SELECT %s
FROM quotes q
%s
%s
%s
LIMIT $%d`, quoteColumns, quoteJoins, whereClause, repo.queryBuilder.BuildOrderBy("q"), len(args))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return collectQuotes(rows, "Search", limit)
}

func (repo *QuoteRepo) ListByGroup(ctx context.Context, groupID int64) ([]*entity.Quote, error) {
	query := `
SELECT ` + quoteColumns + `
FROM quotes q
` + quoteJoins + `
WHERE q.bilingual_group_id = $1
ORDER BY q.id`

	rows, err := repo.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("ListByGroup: %w", err)
	}
	return collectQuotes(rows, "ListByGroup", 2)
}

// ListGrouped pages through grouped quotes in (group id, id) order so that
// members of one group are adjacent.
func (repo *QuoteRepo) ListGrouped(ctx context.Context, offset, limit int) ([]*entity.Quote, error) {
	query := `
SELECT ` + quoteColumns + `
FROM quotes q
` + quoteJoins + `
WHERE q.bilingual_group_id IS NOT NULL
ORDER BY q.bilingual_group_id, q.id
LIMIT $1 OFFSET $2`

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListGrouped: %w", err)
	}
	return collectQuotes(rows, "ListGrouped", limit)
}

func (repo *QuoteRepo) Get(ctx context.Context, id int64) (*entity.Quote, error) {
	query := `
SELECT ` + quoteColumns + `
FROM quotes q
` + quoteJoins + `
WHERE q.id = $1
LIMIT 1`

	return queryOne(ctx, repo.db, "Get", query, id)
}

func (repo *QuoteRepo) CountQuotes(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM quotes`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountQuotes: %w", err)
	}
	return count, nil
}

func (repo *QuoteRepo) CountGroups(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(DISTINCT bilingual_group_id) FROM quotes WHERE bilingual_group_id IS NOT NULL`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountGroups: %w", err)
	}
	return count, nil
}
