package nrdbot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/catalog"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/decklists"
	"github.com/ellavondegurechaff/nrdb-bot/internal/gateways/database"
	"github.com/ellavondegurechaff/nrdb-bot/internal/gateways/database/repositories"
	"github.com/ellavondegurechaff/nrdb-bot/internal/gateways/nrdb"
	"github.com/ellavondegurechaff/nrdb-bot/internal/gateways/spaces"
	"github.com/ellavondegurechaff/nrdb-bot/nrdbot/logger"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// Bot wires the card catalog, resolver and decklist assembler together.
type Bot struct {
	Cfg     Config
	Version string
	Commit  string

	NRDB      *nrdb.Client
	DB        *database.DB
	Mirror    cards.CatalogMirror
	Catalog   *catalog.Store
	Resolver  *catalog.Resolver
	Assembler *decklists.Assembler
}

// SetupMirror opens the configured catalog mirror, if any.
func (b *Bot) SetupMirror(ctx context.Context) error {
	start := time.Now()

	switch b.Cfg.Mirror {
	case MirrorNone:
		return nil
	case MirrorDB:
		db, err := database.New(ctx, b.Cfg.DB)
		if err != nil {
			logger.LogError("Database connection failed", err)
			return fmt.Errorf("database connection failed: %w", err)
		}
		if err := db.InitializeSchema(ctx); err != nil {
			db.Close()
			logger.LogError("Failed to initialize database schema", err)
			return fmt.Errorf("failed to initialize database schema: %w", err)
		}
		b.DB = db
		b.Mirror = repositories.NewCardRepository(db.BunDB())
	case MirrorSpaces:
		m, err := spaces.New(ctx, b.Cfg.Spaces)
		if err != nil {
			logger.LogError("Failed to open Spaces mirror", err)
			return err
		}
		b.Mirror = m
	default:
		return fmt.Errorf("unknown mirror %q", b.Cfg.Mirror)
	}

	logger.LogSystem("Catalog mirror ready",
		slog.String("mirror", b.Cfg.Mirror),
		slog.Duration("took", time.Since(start)))
	return nil
}

// Setup builds the catalog store and the services on top of it. Call
// SetupMirror first to have the store fall back to the mirror.
func (b *Bot) Setup() {
	if b.NRDB == nil {
		b.NRDB = nrdb.NewClient(b.Cfg.ClientConfig())
	}

	var provider cards.CatalogProvider = b.NRDB
	if b.Mirror != nil {
		provider = catalog.NewMirroredProvider(b.NRDB, b.Mirror, b.Cfg.NRDB.RetryInterval.Duration)
	}

	b.Catalog = catalog.NewStore(provider, b.Cfg.CatalogOptions())
	b.Resolver = catalog.NewResolver(b.Catalog)
	b.Assembler = decklists.NewAssembler(b.Catalog, b.NRDB, decklists.DefaultAllianceRules())
	b.Assembler.SetConcurrency(b.Cfg.NRDB.Concurrency)
}

// Start loads the catalog in the background.
func (b *Bot) Start(ctx context.Context) {
	logger.LogSystem("Starting NRDB bot",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))
	b.Catalog.Start(ctx)
}

// SyncMirror downloads the catalog and writes it to the mirror.
func (b *Bot) SyncMirror(ctx context.Context) (int, error) {
	if b.Mirror == nil {
		return 0, fmt.Errorf("no mirror configured")
	}

	cat, err := b.NRDB.FetchCatalog(ctx)
	if err != nil {
		return 0, err
	}
	if err := b.Catalog.Load(cat.Records); err != nil {
		return 0, fmt.Errorf("refusing to mirror catalog: %w", err)
	}
	if err := b.Mirror.SaveCatalog(ctx, cat.Records); err != nil {
		return 0, fmt.Errorf("mirror write failed: %w", err)
	}
	return len(cat.Records), nil
}

type mirrorCounter interface {
	Count(ctx context.Context) (int, error)
}

// MirrorCount reports how many cards the mirror holds. ok is false when the
// mirror cannot count its contents cheaply.
func (b *Bot) MirrorCount(ctx context.Context) (n int, ok bool, err error) {
	c, ok := b.Mirror.(mirrorCounter)
	if !ok {
		return 0, false, nil
	}
	n, err = c.Count(ctx)
	return n, true, err
}

func (b *Bot) Close() {
	if b.Catalog != nil {
		b.Catalog.Stop()
	}
	if b.DB != nil {
		b.DB.Close()
	}
}
