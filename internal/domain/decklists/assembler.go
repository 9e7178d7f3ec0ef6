package decklists

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/catalog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultConcurrency bounds the number of codes resolved at once.
const DefaultConcurrency = 8

// Assembler turns deck sources into categorized decklists.
type Assembler struct {
	source      catalog.SnapshotSource
	decks       cards.DeckProvider
	rules       AllianceRules
	concurrency int
}

// NewAssembler builds an assembler. decks may be nil when only Assemble is
// used; rules may be nil to disable alliance discounts.
func NewAssembler(source catalog.SnapshotSource, decks cards.DeckProvider, rules AllianceRules) *Assembler {
	if rules == nil {
		rules = noRules{}
	}
	return &Assembler{
		source:      source,
		decks:       decks,
		rules:       rules,
		concurrency: DefaultConcurrency,
	}
}

// SetConcurrency changes how many codes are resolved in parallel.
func (a *Assembler) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	a.concurrency = n
}

// AssembleByID fetches a deck from the deck provider and assembles it.
func (a *Assembler) AssembleByID(ctx context.Context, id string, visibility cards.Visibility) (*Decklist, error) {
	if a.decks == nil {
		return nil, fmt.Errorf("%w: no deck provider configured", cards.ErrProviderUnavailable)
	}
	src, err := a.decks.FetchDeck(ctx, id, visibility)
	if err != nil {
		return nil, fmt.Errorf("fetch deck %s: %w", id, err)
	}
	return a.Assemble(ctx, src)
}

// Assemble resolves every code of src against a single catalog snapshot. If
// any code is unknown no decklist is returned and the error lists all of
// them.
func (a *Assembler) Assemble(ctx context.Context, src *cards.DeckSource) (*Decklist, error) {
	start := time.Now()

	snap, err := a.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	lines := mergeLines(src.Cards)
	entries := make([]Entry, len(lines))

	var (
		mu      sync.Mutex
		missing []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			card, err := snap.GetByCode(line.Code)
			if err != nil {
				if errors.Is(err, cards.ErrNotFound) {
					mu.Lock()
					missing = append(missing, line.Code)
					mu.Unlock()
					return nil
				}
				return err
			}
			entries[i] = Entry{
				Card:     card,
				Quantity: line.Quantity,
				Category: Categorize(card),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &cards.IncompleteDeckError{DeckID: src.ID, Codes: missing}
	}

	d := &Decklist{
		ID:      src.ID,
		Name:    src.Name,
		URL:     src.URL,
		Creator: src.Creator,
		Private: src.Private,
		Cards:   groupEntries(entries),
	}
	if ids := d.Cards[CategoryIdentity]; len(ids) > 0 {
		d.Identity = &ids[0]
	}
	a.computeStats(d)

	slog.Debug("Decklist assembled",
		slog.String("type", "cmd"),
		slog.String("deck", src.ID),
		slog.Int("lines", len(entries)),
		slog.Duration("took", time.Since(start)))

	return d, nil
}

// mergeLines sums repeated codes, keeping the first position, and drops
// lines that end up with no copies.
func mergeLines(in []cards.CardQuantity) []cards.CardQuantity {
	pos := make(map[string]int, len(in))
	var out []cards.CardQuantity
	for _, l := range in {
		if i, ok := pos[l.Code]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		pos[l.Code] = len(out)
		out = append(out, l)
	}

	kept := out[:0]
	for _, l := range out {
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	return kept
}

func groupEntries(entries []Entry) map[Category][]Entry {
	groups := make(map[Category][]Entry)
	for _, e := range entries {
		groups[e.Category] = append(groups[e.Category], e)
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(language.English)
	for _, list := range groups {
		sort.SliceStable(list, func(i, j int) bool {
			return col.CompareString(list[i].Card.Title, list[j].Card.Title) < 0
		})
	}
	return groups
}

func (a *Assembler) computeStats(d *Decklist) {
	var st Stats
	newest := -1

	if id := d.Identity; id != nil {
		st.Faction = id.Card.Faction
		st.Side = id.Card.Side
		st.InfluenceLimit = id.Card.InfluenceLimit
		st.MinimumDeckSize = id.Card.MinimumDeckSize
		st.NewestCode = id.Card.Code
		newest = id.Card.NumericCode()
	}

	var influence float64
	for _, c := range DisplayOrder {
		list := d.Cards[c]
		for i := range list {
			e := &list[i]
			if c == CategoryIdentity {
				continue
			}

			st.CardCount += e.Quantity
			if n := e.Card.NumericCode(); n > newest {
				newest = n
				st.NewestCode = e.Card.Code
			}
			if e.Card.Type == cards.TypeAgenda {
				st.AgendaPoints += e.Quantity * cards.IntValue(e.Card.AgendaPoints)
			}

			if d.Identity == nil || e.Card.Faction == st.Faction {
				continue
			}
			cost := float64(e.Quantity * cards.IntValue(e.Card.FactionCost))
			if rule, ok := a.rules.Discount(e.Card.Code); ok {
				cost *= clampMultiplier(rule(d))
			}
			e.Influence = cost
			influence += cost
		}
	}

	st.Influence = int(math.Floor(influence + 0.5))
	d.Stats = st
}

func clampMultiplier(m float64) float64 {
	switch {
	case m < 0:
		return 0
	case m > 1:
		return 1
	default:
		return m
	}
}
