package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a title or query into the form the index compares:
// lower case, without diacritics, single-spaced.
func Normalize(s string) string {
	// transformers keep state, so each call builds its own chain
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Query is a search string prepared once and handed to every scorer.
type Query struct {
	Raw        string
	Normalized string
	Terms      []string
}

// NewQuery normalizes raw and splits it into terms.
func NewQuery(raw string) Query {
	normalized := Normalize(raw)
	return Query{
		Raw:        raw,
		Normalized: normalized,
		Terms:      strings.Fields(normalized),
	}
}

// Empty reports whether the query has nothing to score.
func (q Query) Empty() bool {
	return q.Normalized == ""
}
