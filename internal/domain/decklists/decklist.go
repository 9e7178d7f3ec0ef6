package decklists

import "github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"

// Entry is one card line of an assembled decklist.
type Entry struct {
	Card     *cards.CardRecord
	Quantity int
	Category Category
	// Influence is what the entry costs after alliance discounts.
	Influence float64
}

// Stats are the deck-level totals derived from the entries.
type Stats struct {
	// CardCount excludes the identity.
	CardCount    int
	Influence    int
	AgendaPoints int
	// NewestCode is the most recent card in the deck, identity included.
	NewestCode string

	Faction string
	Side    string
	// InfluenceLimit and MinimumDeckSize are nil when the identity sets no limit.
	InfluenceLimit  *int
	MinimumDeckSize *int
}

// Decklist is an assembled deck. It belongs to the request that built it
// and is not modified after Assemble returns.
type Decklist struct {
	ID      string
	Name    string
	URL     string
	Creator string
	Private bool

	Identity *Entry
	Cards    map[Category][]Entry
	Stats    Stats
}

// Section is a non-empty category with its sorted entries.
type Section struct {
	Category Category
	Entries  []Entry
}

// Sections lists the non-empty categories in display order.
func (d *Decklist) Sections() []Section {
	var sections []Section
	for _, c := range DisplayOrder {
		if entries := d.Cards[c]; len(entries) > 0 {
			sections = append(sections, Section{Category: c, Entries: entries})
		}
	}
	return sections
}

// Count sums the quantities of the given categories.
func (d *Decklist) Count(categories ...Category) int {
	total := 0
	for _, c := range categories {
		for _, e := range d.Cards[c] {
			total += e.Quantity
		}
	}
	return total
}
