package entity

import (
	"fmt"
	"strings"
	"unicode"
)

// Language identifies the language of a quote. Only English and Russian are supported.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageRussian Language = "ru"
)

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageRussian
}

// Opposite returns the other supported language. For an unsupported value it returns "".
func (l Language) Opposite() Language {
	switch l {
	case LanguageEnglish:
		return LanguageRussian
	case LanguageRussian:
		return LanguageEnglish
	default:
		return ""
	}
}

func (l Language) String() string {
	return string(l)
}

// ParseLanguage converts a user supplied code ("en", "RU", " ru ") into a Language.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return l, nil
}

// DetectLanguage guesses the language of text by counting letters.
// Text with more Cyrillic than Latin letters is Russian; anything else is English.
func DetectLanguage(text string) Language {
	var cyrillic, latin int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}
	if cyrillic > latin {
		return LanguageRussian
	}
	return LanguageEnglish
}
