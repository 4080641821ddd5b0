package text_test

import (
	"testing"

	"bilingual-quotes/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "ASCII", input: "hello world", expected: 11},
		{name: "Cyrillic", input: "привет", expected: 6},
		{name: "mixed", input: "Hello, мир", expected: 10},
		{name: "emoji", input: "ok👋", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int
		want    string
		wantCut bool
	}{
		{name: "under limit", input: "мир", limit: 5, want: "мир", wantCut: false},
		{name: "exact limit", input: "мир", limit: 3, want: "мир", wantCut: false},
		{name: "cyrillic cut", input: "привет", limit: 3, want: "при", wantCut: true},
		{name: "ascii cut", input: "hello", limit: 1, want: "h", wantCut: true},
		{name: "zero limit", input: "hello", limit: 0, want: "", wantCut: true},
		{name: "zero limit empty", input: "", limit: 0, want: "", wantCut: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cut := text.Truncate(tt.input, tt.limit)
			if got != tt.want || cut != tt.wantCut {
				t.Errorf("Truncate(%q, %d) = (%q, %v), want (%q, %v)",
					tt.input, tt.limit, got, cut, tt.want, tt.wantCut)
			}
		})
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := map[string]string{
		"":                    "",
		"   ":                 "",
		"  to be  or\tnot ":   "to be or not",
		"быть\n\nили не быть": "быть или не быть",
	}
	for in, want := range tests {
		if got := text.CollapseSpace(in); got != want {
			t.Errorf("CollapseSpace(%q) = %q, want %q", in, got, want)
		}
	}
}

func BenchmarkCountRunes(b *testing.B) {
	input := "Быть или не быть, вот в чём вопрос. To be, or not to be, that is the question."
	for i := 0; i < b.N; i++ {
		_ = text.CountRunes(input)
	}
}
