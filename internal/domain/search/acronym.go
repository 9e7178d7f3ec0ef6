package search

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// AcronymPattern builds a pattern matching titles whose words start with the
// query's characters in order, e.g. "etf" matches "Engineering the Future".
// It reports false when the query has no word characters.
func AcronymPattern(query string) (*regexp.Regexp, bool) {
	letters := nonWord.ReplaceAllString(query, "")
	if letters == "" {
		return nil, false
	}

	var b strings.Builder
	b.WriteString("(?i)")
	for i, r := range letters {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(`\b`)
		b.WriteString(regexp.QuoteMeta(string(r)))
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, false
	}
	return re, true
}
