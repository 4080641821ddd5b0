package entity

import "time"

// Quote is a single quotation in one language.
// GroupID links it to its counterparts in the other language, when known.
type Quote struct {
	ID        int64
	Text      string
	Language  Language
	Author    *Author
	Source    *Source
	GroupID   *int64
	CreatedAt *time.Time
}

// InGroup reports whether the quote carries a bilingual group id.
func (q *Quote) InGroup() bool {
	return q != nil && q.GroupID != nil
}

// Author holds the names an author is known by in each language.
type Author struct {
	ID     int64
	NameEN string
	NameRU string
	Bio    string
}

// DisplayName returns the author's name in lang, falling back to the other
// language when that name is empty.
func (a *Author) DisplayName(lang Language) string {
	if a == nil {
		return ""
	}
	if lang == LanguageRussian {
		if a.NameRU != "" {
			return a.NameRU
		}
		return a.NameEN
	}
	if a.NameEN != "" {
		return a.NameEN
	}
	return a.NameRU
}

// Source is the work a quote was taken from.
type Source struct {
	ID       int64
	Title    string
	Language string
	Type     string
}
