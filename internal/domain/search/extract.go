package search

import (
	"regexp"
	"strings"
)

var bracketQuery = regexp.MustCompile(`\[(.*?)\]`)

// ExtractQueries returns the text inside each [bracketed] fragment of a
// chat message, in order. Empty brackets are skipped.
func ExtractQueries(text string) []string {
	matches := bracketQuery.FindAllStringSubmatch(text, -1)
	queries := make([]string, 0, len(matches))
	for _, m := range matches {
		if q := strings.TrimSpace(m[1]); q != "" {
			queries = append(queries, q)
		}
	}
	return queries
}
