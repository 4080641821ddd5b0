// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"bilingual-quotes/internal/domain/entity"
)

// QuoteQueryBuilder builds the full-text search clauses for quotes.
// Matching uses the 'simple' text search configuration so English and Russian
// are tokenized the same way, with ILIKE containment as a fallback for
// queries that tokenize to nothing (punctuation, partial words).
type QuoteQueryBuilder struct{}

// NewQuoteQueryBuilder creates a new query builder instance.
func NewQuoteQueryBuilder() *QuoteQueryBuilder {
	return &QuoteQueryBuilder{}
}

// BuildWhereClause returns the WHERE clause and its arguments for a text search.
// $1 is always the raw query text so ORDER BY can rank against it.
func (qb *QuoteQueryBuilder) BuildWhereClause(text string, lang *entity.Language, tableAlias string) (clause string, args []interface{}) {
	textCol := column(tableAlias, "text")

	conditions := []string{
		fmt.Sprintf("(to_tsvector('simple', %s) @@ plainto_tsquery('simple', $1) OR %s ILIKE $2)", textCol, textCol),
	}
	args = append(args, text, containsPattern(text))

	if lang != nil {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column(tableAlias, "language"), len(args)+1))
		args = append(args, string(*lang))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildOrderBy ranks by ts_rank against $1, newest id first on ties.
func (qb *QuoteQueryBuilder) BuildOrderBy(tableAlias string) string {
	textCol := column(tableAlias, "text")
	return fmt.Sprintf("ORDER BY ts_rank(to_tsvector('simple', %s), plainto_tsquery('simple', $1)) DESC, %s DESC",
		textCol, column(tableAlias, "id"))
}

func column(tableAlias, name string) string {
	if tableAlias == "" {
		return name
	}
	return tableAlias + "." + name
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern escapes LIKE metacharacters and wraps s in wildcards.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
