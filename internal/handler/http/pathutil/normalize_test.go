package pathutil

import (
	"strconv"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "quote by id", path: "/quotes/123", expected: "/quotes/:id"},
		{name: "quote with trailing slash", path: "/quotes/123/", expected: "/quotes/:id"},
		{name: "quote with query", path: "/quotes/9?x=1", expected: "/quotes/:id"},
		{name: "search unchanged", path: "/quotes/search", expected: "/quotes/search"},
		{name: "search with query", path: "/quotes/search?q=love&lang=en", expected: "/quotes/search"},
		{name: "bilingual listing", path: "/quotes/bilingual", expected: "/quotes/bilingual"},
		{name: "health", path: "/health", expected: "/health"},
		{name: "metrics", path: "/metrics", expected: "/metrics"},
		{name: "root", path: "/", expected: "/"},
		{name: "unknown id path", path: "/unknown/123", expected: "/unknown/123"},
		{name: "non-numeric quote id", path: "/quotes/abc", expected: "/quotes/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestNormalizePath_Cardinality(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 1; i <= 1000; i++ {
		seen[NormalizePath("/quotes/"+strconv.Itoa(i))] = struct{}{}
	}
	if len(seen) != 1 {
		t.Errorf("expected 1 unique label, got %d", len(seen))
	}
}

func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{"/quotes/123", "/quotes/search?q=love", "/health"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = NormalizePath(paths[i%len(paths)])
	}
}
