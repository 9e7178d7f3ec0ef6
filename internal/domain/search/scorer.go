package search

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultMinTermLength = 3
	DefaultMaxDistance   = 3
	DefaultMinScore      = 0.25

	// editsPerRunes is how many query runes buy one edit of tolerance.
	editsPerRunes = 3

	// positionDecay halves a term's weight once it starts this many runes into the title.
	positionDecay = 10.0
)

// Scorer rates how well an index entry answers a query. Scores of all
// scorers are summed; zero means "no evidence".
type Scorer interface {
	Score(q Query, e *Entry) float64
}

// SubstringScorer rewards query terms that occur verbatim in the title,
// weighting matches near the start of the title higher.
type SubstringScorer struct {
	MinTermLength int
}

func (s SubstringScorer) Score(q Query, e *Entry) float64 {
	var total, matched float64
	for _, term := range q.Terms {
		n := utf8.RuneCountInString(term)
		total += float64(n)
		if n < s.MinTermLength {
			continue
		}

		idx := strings.Index(e.Title, term)
		if idx < 0 {
			continue
		}
		offset := utf8.RuneCountInString(e.Title[:idx])
		matched += float64(n) / (1 + float64(offset)/positionDecay)
	}

	if total == 0 {
		return 0
	}
	return matched / total
}

// EditDistanceScorer rewards titles within a few edits of the whole query.
// The tolerance is MaxDistance, capped at one edit per editsPerRunes runes
// of query so short queries only ever match near-exact titles.
type EditDistanceScorer struct {
	MaxDistance int
}

func (s EditDistanceScorer) Score(q Query, e *Entry) float64 {
	query := q.runes()
	limit := s.tolerance(len(query))
	d, ok := boundedLevenshtein(query, e.runes, limit)
	if !ok {
		return 0
	}
	return 1 - float64(d)/float64(limit+1)
}

func (s EditDistanceScorer) tolerance(queryLen int) int {
	return max(0, min(s.MaxDistance, queryLen/editsPerRunes))
}

func (q Query) runes() []rune {
	return []rune(q.Normalized)
}

// boundedLevenshtein computes the edit distance between a and b and reports
// false as soon as it is certain to exceed limit.
func boundedLevenshtein(a, b []rune, limit int) (int, bool) {
	if limit < 0 {
		return 0, false
	}
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	if diff > limit {
		return 0, false
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > limit {
			return 0, false
		}
		prev, curr = curr, prev
	}

	d := prev[len(b)]
	return d, d <= limit
}
