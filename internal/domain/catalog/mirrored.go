package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
)

// MirroredProvider serves the remote catalog and keeps a copy in a mirror.
// When the remote is down the last mirrored catalog is served instead, with
// a short horizon so the remote is tried again soon.
type MirroredProvider struct {
	remote      cards.CatalogProvider
	mirror      cards.CatalogMirror
	fallbackTTL time.Duration
	now         func() time.Time
}

var _ cards.CatalogProvider = (*MirroredProvider)(nil)

func NewMirroredProvider(remote cards.CatalogProvider, mirror cards.CatalogMirror, fallbackTTL time.Duration) *MirroredProvider {
	if fallbackTTL <= 0 {
		fallbackTTL = DefaultRetryInterval
	}
	return &MirroredProvider{
		remote:      remote,
		mirror:      mirror,
		fallbackTTL: fallbackTTL,
		now:         time.Now,
	}
}

func (p *MirroredProvider) FetchCatalog(ctx context.Context) (*cards.Catalog, error) {
	catalog, remoteErr := p.remote.FetchCatalog(ctx)
	if remoteErr == nil && catalog == nil {
		remoteErr = fmt.Errorf("remote returned no catalog")
	}
	if remoteErr == nil {
		if err := p.mirror.SaveCatalog(ctx, catalog.Records); err != nil {
			slog.Warn("Failed to update catalog mirror",
				slog.String("type", "catalog"),
				slog.Any("error", err))
		}
		return catalog, nil
	}

	records, mirrorErr := p.mirror.LoadCatalog(ctx)
	if mirrorErr != nil {
		return nil, fmt.Errorf("%w: remote: %v; mirror: %v", cards.ErrProviderUnavailable, remoteErr, mirrorErr)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: remote: %v; mirror is empty", cards.ErrProviderUnavailable, remoteErr)
	}

	slog.Warn("Serving catalog from mirror",
		slog.String("type", "catalog"),
		slog.Int("cards", len(records)),
		slog.Any("error", remoteErr))

	return &cards.Catalog{
		Records: records,
		Expires: p.now().Add(p.fallbackTTL),
	}, nil
}
