package cards

//go:generate mockgen -source=providers.go -destination=mock/providers.go -package=mock

import (
	"context"
	"time"
)

// Catalog is one full download of the card database.
type Catalog struct {
	Records []*CardRecord
	// Expires is the horizon after which the catalog should be fetched again.
	// The zero value means the provider gave no horizon.
	Expires time.Time
}

type CatalogProvider interface {
	FetchCatalog(ctx context.Context) (*Catalog, error)
}

type DeckProvider interface {
	FetchDeck(ctx context.Context, id string, visibility Visibility) (*DeckSource, error)
}

// CatalogMirror persists the last good catalog so a restart can serve
// lookups while the remote database is unreachable.
type CatalogMirror interface {
	SaveCatalog(ctx context.Context, records []*CardRecord) error
	LoadCatalog(ctx context.Context) ([]*CardRecord, error)
}
