package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to the template used as a metrics label.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/quotes/\d+$`), Template: "/quotes/:id"},
}

// NormalizePath collapses ID-bearing paths into their route template so that
// metrics labels and span names stay low-cardinality.
//
//	NormalizePath("/quotes/123")        // "/quotes/:id"
//	NormalizePath("/quotes/123/")       // "/quotes/:id"
//	NormalizePath("/quotes/search")     // "/quotes/search"
//	NormalizePath("/health")            // "/health"
//
// Unknown paths pass through unchanged apart from query and trailing slash.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
