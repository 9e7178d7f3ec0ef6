package search

import (
	"sort"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/sahilm/fuzzy"
)

// Options tunes the scorers and the result threshold.
type Options struct {
	MinTermLength int
	MaxDistance   int
	MinScore      float64
}

// DefaultOptions returns the tuning used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		MinTermLength: DefaultMinTermLength,
		MaxDistance:   DefaultMaxDistance,
		MinScore:      DefaultMinScore,
	}
}

// Entry is one searchable title. Position is the record's place in catalog
// order and breaks score ties.
type Entry struct {
	Record   *cards.CardRecord
	Title    string
	Position int

	runes []rune
}

// Result is a scored search hit.
type Result struct {
	Record *cards.CardRecord
	Score  float64
}

// Index answers ranked fuzzy title queries over one catalog snapshot. It is
// immutable after NewIndex and safe for concurrent use.
type Index struct {
	entries  []Entry
	scorers  []Scorer
	minScore float64
}

// NewIndex indexes records in the order given.
func NewIndex(records []*cards.CardRecord, opts Options) *Index {
	entries := make([]Entry, len(records))
	for i, r := range records {
		title := Normalize(r.Title)
		entries[i] = Entry{
			Record:   r,
			Title:    title,
			Position: i,
			runes:    []rune(title),
		}
	}

	return &Index{
		entries: entries,
		scorers: []Scorer{
			SubstringScorer{MinTermLength: opts.MinTermLength},
			EditDistanceScorer{MaxDistance: opts.MaxDistance},
		},
		minScore: opts.MinScore,
	}
}

// Len returns the number of indexed titles.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Search ranks every title against query, best first. Hits below the
// minimum score are dropped; an empty query yields no results.
func (ix *Index) Search(query string) []Result {
	q := NewQuery(query)
	if q.Empty() {
		return nil
	}

	type hit struct {
		entry *Entry
		score float64
	}

	var hits []hit
	for i := range ix.entries {
		e := &ix.entries[i]

		var score float64
		for _, s := range ix.scorers {
			score += s.Score(q, e)
		}
		if score > 0 && score >= ix.minScore {
			hits = append(hits, hit{entry: e, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].entry.Position < hits[j].entry.Position
	})

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{Record: h.entry.Record, Score: h.score}
	}
	return results
}

// MatchAcronym returns the first record, in catalog order, whose title
// spells the query as word initials. Query and titles are compared in
// normalized form, so accents on either side do not matter.
func (ix *Index) MatchAcronym(query string) *cards.CardRecord {
	pattern, ok := AcronymPattern(Normalize(query))
	if !ok {
		return nil
	}

	for i := range ix.entries {
		if pattern.MatchString(ix.entries[i].Title) {
			return ix.entries[i].Record
		}
	}
	return nil
}

// Suggest lists up to limit titles that contain the query's characters in
// order, for autocompletion.
func (ix *Index) Suggest(query string, limit int) []*cards.CardRecord {
	q := Normalize(query)
	if q == "" || limit <= 0 {
		return nil
	}

	matches := fuzzy.FindFrom(q, titleSource(ix.entries))
	if len(matches) > limit {
		matches = matches[:limit]
	}

	suggestions := make([]*cards.CardRecord, len(matches))
	for i, m := range matches {
		suggestions[i] = ix.entries[m.Index].Record
	}
	return suggestions
}

// titleSource implements fuzzy.Source over the normalized titles.
type titleSource []Entry

func (s titleSource) String(i int) string { return s[i].Title }
func (s titleSource) Len() int            { return len(s) }
