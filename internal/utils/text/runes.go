// Package text provides rune-aware helpers for bilingual (Latin and Cyrillic) text.
package text

import (
	"strings"
	"unicode/utf8"
)

// CountRunes counts the Unicode characters in text rather than its bytes.
//
//	CountRunes("hello")  // 5
//	CountRunes("привет") // 6
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate cuts text to at most limit runes without splitting a character.
// The second result reports whether anything was cut.
func Truncate(text string, limit int) (string, bool) {
	if limit <= 0 {
		return "", text != ""
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i], true
		}
		count++
	}
	return text, false
}

// CollapseSpace trims text and folds every run of whitespace into one space.
func CollapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
