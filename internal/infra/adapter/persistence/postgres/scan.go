package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bilingual-quotes/internal/domain/entity"
)

// DBTX is the subset of *sql.DB the repositories need.
// *circuitbreaker.DBCircuitBreaker satisfies it as well. Single-row lookups go
// through QueryContext so that an open breaker rejects them up front.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

const quoteColumns = `q.id, q.text, q.language, q.bilingual_group_id, q.created_at,
       a.id, a.name_en, a.name_ru, a.bio,
       s.id, s.title, s.language, s.source_type`

const quoteJoins = `LEFT JOIN authors a ON a.id = q.author_id
LEFT JOIN sources s ON s.id = q.source_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuote(row rowScanner) (*entity.Quote, error) {
	var (
		q         entity.Quote
		lang      string
		groupID   sql.NullInt64
		createdAt sql.NullTime

		authorID             sql.NullInt64
		nameEN, nameRU, bio  sql.NullString
		sourceID             sql.NullInt64
		title, srcLang, kind sql.NullString
	)
	if err := row.Scan(&q.ID, &q.Text, &lang, &groupID, &createdAt,
		&authorID, &nameEN, &nameRU, &bio,
		&sourceID, &title, &srcLang, &kind); err != nil {
		return nil, err
	}

	q.Language = entity.Language(lang)
	if groupID.Valid {
		g := groupID.Int64
		q.GroupID = &g
	}
	if createdAt.Valid {
		t := createdAt.Time
		q.CreatedAt = &t
	}
	if authorID.Valid {
		q.Author = &entity.Author{
			ID:     authorID.Int64,
			NameEN: nameEN.String,
			NameRU: nameRU.String,
			Bio:    bio.String,
		}
	}
	if sourceID.Valid {
		q.Source = &entity.Source{
			ID:       sourceID.Int64,
			Title:    title.String,
			Language: srcLang.String,
			Type:     kind.String,
		}
	}
	return &q, nil
}

// maxPrealloc caps the slice capacity reserved from a caller-supplied limit.
const maxPrealloc = 256

func collectQuotes(rows *sql.Rows, op string, capacity int) ([]*entity.Quote, error) {
	defer func() { _ = rows.Close() }()

	quotes := make([]*entity.Quote, 0, min(max(capacity, 0), maxPrealloc))
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return quotes, nil
}

// queryOne runs a query expected to return at most one quote.
// Returns (nil, nil) when no row matches.
func queryOne(ctx context.Context, db DBTX, op, query string, args ...interface{}) (*entity.Quote, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	quotes, err := collectQuotes(rows, op, 1)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, nil
	}
	return quotes[0], nil
}
