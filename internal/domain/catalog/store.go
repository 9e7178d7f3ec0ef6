package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/search"
	"github.com/ellavondegurechaff/nrdb-bot/nrdbot/logger"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheSize     = 1024
	DefaultTTL           = 24 * time.Hour
	DefaultRetryInterval = 5 * time.Minute
)

// Options configures a Store.
type Options struct {
	Search        search.Options
	CacheSize     int
	DefaultTTL    time.Duration
	RetryInterval time.Duration
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Search:        search.DefaultOptions(),
		CacheSize:     DefaultCacheSize,
		DefaultTTL:    DefaultTTL,
		RetryInterval: DefaultRetryInterval,
	}
}

// Store holds the current catalog snapshot. Readers get either the old or
// the new snapshot in full; the refresh loop is the only writer.
type Store struct {
	provider cards.CatalogProvider
	opts     Options

	current atomic.Pointer[Snapshot]
	started atomic.Bool

	// settled is closed once the first load attempt has finished
	settled    chan struct{}
	settleOnce sync.Once

	group singleflight.Group

	mu      sync.Mutex
	timer   *time.Timer
	baseCtx context.Context
	stopped bool

	now func() time.Time
}

// NewStore creates a store fed by provider. Nothing is fetched until Start
// or Refresh is called.
func NewStore(provider cards.CatalogProvider, opts Options) *Store {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = DefaultTTL
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	return &Store{
		provider: provider,
		opts:     opts,
		settled:  make(chan struct{}),
		baseCtx:  context.Background(),
		now:      time.Now,
	}
}

// Start triggers the first catalog download in the background. Later
// refreshes are scheduled from the provider's expiry horizon.
func (st *Store) Start(ctx context.Context) {
	st.mu.Lock()
	st.baseCtx = context.WithoutCancel(ctx)
	st.mu.Unlock()

	st.started.Store(true)
	go func() {
		if err := st.Refresh(ctx); err != nil {
			logger.LogError("Initial catalog load failed", err)
		}
	}()
}

// Stop cancels the scheduled refresh.
func (st *Store) Stop() {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.stopped = true
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
}

// Load publishes records as the new snapshot. On error the previous
// snapshot stays in place.
func (st *Store) Load(records []*cards.CardRecord) error {
	_, err := st.load(records, time.Time{})
	return err
}

func (st *Store) load(records []*cards.CardRecord, expires time.Time) (*Snapshot, error) {
	start := st.now()
	snap, err := newSnapshot(records, st.opts, start, expires)
	if err != nil {
		return nil, err
	}

	st.current.Store(snap)
	st.settle()

	slog.Info("Catalog snapshot published",
		slog.String("type", "catalog"),
		slog.Int("cards", snap.Len()),
		slog.Duration("took", time.Since(start)))
	return snap, nil
}

// Refresh downloads the catalog and swaps it in. Concurrent calls share a
// single download. The next refresh is scheduled whatever the outcome.
func (st *Store) Refresh(ctx context.Context) error {
	st.started.Store(true)
	_, err, _ := st.group.Do("refresh", func() (any, error) {
		return nil, st.refresh(ctx)
	})
	return err
}

func (st *Store) refresh(ctx context.Context) error {
	catalog, err := st.provider.FetchCatalog(ctx)
	if err == nil && catalog != nil {
		var snap *Snapshot
		snap, err = st.load(catalog.Records, catalog.Expires)
		if err == nil {
			st.schedule(st.horizon(snap.Expires))
			return nil
		}
	} else if err == nil {
		err = errors.New("provider returned no catalog")
	}

	logger.LogError("Failed to refresh catalog", err,
		slog.Duration("retry_in", st.opts.RetryInterval))

	st.schedule(st.opts.RetryInterval)
	st.settle()

	if errors.Is(err, cards.ErrProviderUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", cards.ErrProviderUnavailable, err)
}

// horizon turns an expiry time into a delay, using the default TTL when the
// provider gave none or it has already passed.
func (st *Store) horizon(expires time.Time) time.Duration {
	if !expires.IsZero() {
		if d := expires.Sub(st.now()); d > 0 {
			return d
		}
	}
	return st.opts.DefaultTTL
}

func (st *Store) schedule(after time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.stopped {
		return
	}
	if st.timer != nil {
		st.timer.Stop()
	}
	ctx := st.baseCtx
	st.timer = time.AfterFunc(after, func() {
		if err := st.Refresh(ctx); err != nil {
			slog.Warn("Scheduled catalog refresh failed",
				slog.String("type", "catalog"),
				slog.Any("error", err))
		}
	})
}

func (st *Store) settle() {
	st.settleOnce.Do(func() { close(st.settled) })
}

// Snapshot returns the current snapshot. Before the first load it waits for
// the in-flight load to finish and fails with ErrProviderUnavailable if it
// did not produce a catalog.
func (st *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := st.current.Load(); snap != nil {
		return snap, nil
	}
	if !st.started.Load() {
		return nil, fmt.Errorf("catalog not loaded: %w", cards.ErrProviderUnavailable)
	}

	select {
	case <-st.settled:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if snap := st.current.Load(); snap != nil {
		return snap, nil
	}
	return nil, fmt.Errorf("catalog not loaded: %w", cards.ErrProviderUnavailable)
}

// GetByCode looks a card up in the current snapshot.
func (st *Store) GetByCode(ctx context.Context, code string) (*cards.CardRecord, error) {
	snap, err := st.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.GetByCode(code)
}

// Search runs a ranked fuzzy query against the current snapshot.
func (st *Store) Search(ctx context.Context, query string) ([]search.Result, error) {
	snap, err := st.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Index().Search(query), nil
}
