package catalog

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/search"
	lru "github.com/hashicorp/golang-lru"
)

// Snapshot pairs one catalog download with the index built from it. A
// snapshot is never modified after it is published.
type Snapshot struct {
	records []*cards.CardRecord
	byCode  map[string]*cards.CardRecord
	index   *search.Index
	cache   *lru.Cache

	LoadedAt time.Time
	Expires  time.Time
}

func newSnapshot(records []*cards.CardRecord, opts Options, loadedAt, expires time.Time) (*Snapshot, error) {
	valid := make([]*cards.CardRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			slog.Warn("Skipping invalid card record",
				slog.String("type", "catalog"),
				slog.Any("error", err))
			continue
		}
		valid = append(valid, r.Canonical())
	}

	// catalog order is ascending code; ties keep download order
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Code < valid[j].Code
	})

	byCode := make(map[string]*cards.CardRecord, len(valid))
	ordered := valid[:0]
	for _, r := range valid {
		if _, dup := byCode[r.Code]; dup {
			slog.Warn("Skipping duplicate card code",
				slog.String("type", "catalog"),
				slog.String("code", r.Code),
				slog.String("title", r.Title))
			continue
		}
		byCode[r.Code] = r
		ordered = append(ordered, r)
	}

	if len(ordered) == 0 {
		return nil, fmt.Errorf("catalog contains no valid cards (%d records received)", len(records))
	}

	var cache *lru.Cache
	if opts.CacheSize > 0 {
		c, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create resolution cache: %w", err)
		}
		cache = c
	}

	return &Snapshot{
		records:  ordered,
		byCode:   byCode,
		index:    search.NewIndex(ordered, opts.Search),
		cache:    cache,
		LoadedAt: loadedAt,
		Expires:  expires,
	}, nil
}

// GetByCode returns the record with the given code.
func (s *Snapshot) GetByCode(code string) (*cards.CardRecord, error) {
	r, ok := s.byCode[code]
	if !ok {
		return nil, fmt.Errorf("card %s: %w", code, cards.ErrNotFound)
	}
	return r, nil
}

// Records returns the cards in catalog order.
func (s *Snapshot) Records() []*cards.CardRecord {
	out := make([]*cards.CardRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Snapshot) Index() *search.Index {
	return s.index
}

func (s *Snapshot) Len() int {
	return len(s.records)
}

// resolve runs fuzzy search and falls back to acronym matching only when
// the fuzzy pass finds nothing. Misses are cached too.
func (s *Snapshot) resolve(text string) *cards.CardRecord {
	key := search.Normalize(text)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached.(*cards.CardRecord)
		}
	}

	var found *cards.CardRecord
	if results := s.index.Search(key); len(results) > 0 {
		found = results[0].Record
	} else {
		found = s.index.MatchAcronym(key)
	}

	if s.cache != nil {
		s.cache.Add(key, found)
	}
	return found
}
