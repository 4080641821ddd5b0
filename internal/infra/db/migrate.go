package db

import (
	"database/sql"
)

var tables = []string{
	`
CREATE TABLE IF NOT EXISTS authors (
    id      SERIAL PRIMARY KEY,
    name_en TEXT,
    name_ru TEXT,
    bio     TEXT
)`,
	`
CREATE TABLE IF NOT EXISTS sources (
    id          SERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    language    VARCHAR(8),
    source_type VARCHAR(32)
)`,
	`
CREATE TABLE IF NOT EXISTS quotes (
    id                 SERIAL PRIMARY KEY,
    text               TEXT NOT NULL,
    language           VARCHAR(2) NOT NULL CHECK (language IN ('en', 'ru')),
    author_id          INTEGER REFERENCES authors(id) ON DELETE SET NULL,
    source_id          INTEGER REFERENCES sources(id) ON DELETE SET NULL,
    bilingual_group_id BIGINT,
    created_at         TIMESTAMPTZ DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS quote_translations (
    id              SERIAL PRIMARY KEY,
    source_quote_id INTEGER NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
    target_quote_id INTEGER NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
    created_at      TIMESTAMPTZ DEFAULT now(),
    UNIQUE (source_quote_id, target_quote_id)
)`,
}

var indexes = []string{
	// fast path group lookup and ListGrouped ordering
	`CREATE INDEX IF NOT EXISTS idx_quotes_group_id ON quotes(bilingual_group_id, id) WHERE bilingual_group_id IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_language ON quotes(language)`,
	// full-text search on the 'simple' configuration
	`CREATE INDEX IF NOT EXISTS idx_quotes_text_fts ON quotes USING gin(to_tsvector('simple', text))`,
	// slow path lookups in both directions
	`CREATE INDEX IF NOT EXISTS idx_quote_translations_source ON quote_translations(source_quote_id)`,
	`CREATE INDEX IF NOT EXISTS idx_quote_translations_target ON quote_translations(target_quote_id)`,
}

// MigrateUp creates the schema. Every statement is idempotent.
func MigrateUp(db *sql.DB) error {
	for _, stmt := range tables {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up the ILIKE fallback. Errors are ignored because the
	// extension needs superuser rights on some managed databases.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_quotes_text_trgm ON quotes USING gin(text gin_trgm_ops)`)

	return nil
}

// MigrateDown drops the schema in reverse order of creation.
// Use with caution: this will delete all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS quote_translations CASCADE`,
		`DROP TABLE IF EXISTS quotes CASCADE`,
		`DROP TABLE IF EXISTS sources CASCADE`,
		`DROP TABLE IF EXISTS authors CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
