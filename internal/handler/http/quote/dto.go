// Package quote provides HTTP handlers for bilingual quote search, listing
// and lookup.
package quote

import (
	"context"
	"time"

	"bilingual-quotes/internal/domain/entity"
	"bilingual-quotes/internal/usecase/search"
)

// Service is the read side of the quote catalog the handlers depend on.
// *search.Service implements it.
type Service interface {
	Search(ctx context.Context, q search.Query) ([]entity.BilingualPair, error)
	ListBilingual(ctx context.Context, offset, limit int) ([]entity.BilingualPair, error)
	Get(ctx context.Context, id int64) (*entity.Quote, error)
}

// DTO represents the JSON structure of a single quote.
type DTO struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	Language  string     `json:"language"`
	Author    *AuthorDTO `json:"author"`
	Source    *SourceDTO `json:"source"`
	CreatedAt *string    `json:"created_at"`
}

// AuthorDTO carries both spellings of the author's name. Name is the one
// matching the quote's language.
type AuthorDTO struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	NameEN string `json:"name_en"`
	NameRU string `json:"name_ru"`
	Bio    string `json:"bio"`
}

type SourceDTO struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Type     string `json:"type"`
}

// PairDTO is one search or listing result. A missing side is null.
type PairDTO struct {
	English           *DTO   `json:"english"`
	Russian           *DTO   `json:"russian"`
	IsTranslated      bool   `json:"is_translated"`
	TranslationSource string `json:"translation_source,omitempty"`
}

// NewDTO converts a quote entity. A nil quote yields nil.
func NewDTO(q *entity.Quote) *DTO {
	if q == nil {
		return nil
	}
	out := &DTO{
		ID:       q.ID,
		Text:     q.Text,
		Language: q.Language.String(),
	}
	if q.Author != nil {
		out.Author = &AuthorDTO{
			ID:     q.Author.ID,
			Name:   q.Author.DisplayName(q.Language),
			NameEN: q.Author.NameEN,
			NameRU: q.Author.NameRU,
			Bio:    q.Author.Bio,
		}
	}
	if q.Source != nil {
		out.Source = &SourceDTO{
			ID:       q.Source.ID,
			Title:    q.Source.Title,
			Language: q.Source.Language,
			Type:     q.Source.Type,
		}
	}
	if q.CreatedAt != nil {
		ts := q.CreatedAt.UTC().Format(time.RFC3339)
		out.CreatedAt = &ts
	}
	return out
}

// NewPairDTO converts a pair entity.
func NewPairDTO(p entity.BilingualPair) PairDTO {
	return PairDTO{
		English:           NewDTO(p.English),
		Russian:           NewDTO(p.Russian),
		IsTranslated:      p.IsTranslated,
		TranslationSource: string(p.TranslationSource),
	}
}

// NewPairDTOs converts a result list. The result is never nil so that an
// empty result serializes as [].
func NewPairDTOs(pairs []entity.BilingualPair) []PairDTO {
	out := make([]PairDTO, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, NewPairDTO(p))
	}
	return out
}
