package entity

// TranslationSource records how the two sides of a pair were matched.
type TranslationSource string

const (
	// TranslationSourceGroup means both sides share a bilingual group id.
	TranslationSourceGroup TranslationSource = "database_group"
	// TranslationSourceLink means the sides were matched through the legacy translation link table.
	TranslationSourceLink TranslationSource = "database_translation"
	// TranslationSourceNone means no counterpart was found.
	TranslationSourceNone TranslationSource = "none"
)

// BilingualPair is the unit of output for search and listing.
// At least one side is always set.
type BilingualPair struct {
	English           *Quote
	Russian           *Quote
	IsTranslated      bool
	TranslationSource TranslationSource
}

// IsComplete reports whether both sides are present.
func (p BilingualPair) IsComplete() bool {
	return p.English != nil && p.Russian != nil
}

// IsEmpty reports whether neither side is present.
func (p BilingualPair) IsEmpty() bool {
	return p.English == nil && p.Russian == nil
}

// MaxID returns the larger id of the present sides, or 0 for an empty pair.
func (p BilingualPair) MaxID() int64 {
	var id int64
	if p.English != nil && p.English.ID > id {
		id = p.English.ID
	}
	if p.Russian != nil && p.Russian.ID > id {
		id = p.Russian.ID
	}
	return id
}

// QuoteIDs returns the ids of the present sides, English first.
func (p BilingualPair) QuoteIDs() []int64 {
	ids := make([]int64, 0, 2)
	if p.English != nil {
		ids = append(ids, p.English.ID)
	}
	if p.Russian != nil {
		ids = append(ids, p.Russian.ID)
	}
	return ids
}

// Side returns the quote on the lang side of the pair.
func (p BilingualPair) Side(lang Language) *Quote {
	switch lang {
	case LanguageEnglish:
		return p.English
	case LanguageRussian:
		return p.Russian
	default:
		return nil
	}
}

// Place puts q on the side matching its language, replacing any quote already
// there. Quotes in other languages are ignored.
func (p *BilingualPair) Place(q *Quote) {
	switch q.Language {
	case LanguageEnglish:
		p.English = q
	case LanguageRussian:
		p.Russian = q
	}
}

// NewSinglePair wraps a quote that has no counterpart.
func NewSinglePair(q *Quote) BilingualPair {
	p := BilingualPair{TranslationSource: TranslationSourceNone}
	p.Place(q)
	return p
}
