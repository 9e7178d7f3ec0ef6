package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
)

// minQueryLength is the shortest query worth resolving.
const minQueryLength = 2

// SnapshotSource hands out the catalog snapshot a request should work on.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Resolver turns free text into at most one card.
type Resolver struct {
	source SnapshotSource
}

func NewResolver(source SnapshotSource) *Resolver {
	return &Resolver{source: source}
}

// ResolveByTitle returns the best match for text, or nil when nothing
// matches. An error means the catalog itself is unavailable, never that the
// query had no hits.
func (r *Resolver) ResolveByTitle(ctx context.Context, text string) (*cards.CardRecord, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minQueryLength {
		return nil, nil
	}

	snap, err := r.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.resolve(text), nil
}

// ResolveAll resolves several queries against the same snapshot. Cards are
// returned in query order; queries without a match are listed in missing.
func (r *Resolver) ResolveAll(ctx context.Context, queries []string) (found []*cards.CardRecord, missing []string, err error) {
	snap, err := r.source.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	for _, q := range queries {
		trimmed := strings.TrimSpace(q)
		if utf8.RuneCountInString(trimmed) < minQueryLength {
			missing = append(missing, q)
			continue
		}
		if card := snap.resolve(trimmed); card != nil {
			found = append(found, card)
		} else {
			missing = append(missing, q)
		}
	}
	return found, missing, nil
}

// Suggest lists up to limit cards for autocompleting a partial title.
func (r *Resolver) Suggest(ctx context.Context, partial string, limit int) ([]*cards.CardRecord, error) {
	snap, err := r.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Index().Suggest(partial, limit), nil
}
