package nrdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
)

const (
	DefaultBaseURL      = "https://netrunnerdb.com"
	DefaultCardsPath    = "/api/cards/"
	DefaultDecklistPath = "/api/2.0/public/decklist/%s"
	DefaultDeckPath     = "/api/2.0/public/deck/%s"
	DefaultTimeout      = 15 * time.Second

	maxBodySize = 32 << 20
)

type Config struct {
	BaseURL      string
	CardsPath    string
	DecklistPath string
	DeckPath     string
	Timeout      time.Duration
	UserAgent    string
}

func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		CardsPath:    DefaultCardsPath,
		DecklistPath: DefaultDecklistPath,
		DeckPath:     DefaultDeckPath,
		Timeout:      DefaultTimeout,
		UserAgent:    "nrdb-bot",
	}
}

// Client talks to the NetrunnerDB public API. It serves both the card
// catalog and decklists.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

var (
	_ cards.CatalogProvider = (*Client)(nil)
	_ cards.DeckProvider    = (*Client)(nil)
)

func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.CardsPath == "" {
		cfg.CardsPath = def.CardsPath
	}
	if cfg.DecklistPath == "" {
		cfg.DecklistPath = def.DecklistPath
	}
	if cfg.DeckPath == "" {
		cfg.DeckPath = def.DeckPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			// Unshared private decks answer with a redirect to the login page.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// FetchCatalog downloads the full card list. The Expires header, when
// present, becomes the catalog's refresh horizon.
func (c *Client) FetchCatalog(ctx context.Context) (*cards.Catalog, error) {
	start := time.Now()

	body, header, err := c.get(ctx, c.cfg.CardsPath)
	if err != nil {
		if errors.Is(err, cards.ErrNotFound) || errors.Is(err, cards.ErrForbidden) {
			return nil, fmt.Errorf("%w: card list: %w", cards.ErrProviderUnavailable, err)
		}
		return nil, fmt.Errorf("card list: %w", err)
	}

	records, err := decodeCards(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cards.ErrProviderUnavailable, err)
	}

	var expires time.Time
	if v := header.Get("Expires"); v != "" {
		if t, err := http.ParseTime(v); err == nil {
			expires = t
		}
	}

	slog.Info("Fetched card catalog",
		slog.String("type", "catalog"),
		slog.Int("cards", len(records)),
		slog.Time("expires", expires),
		slog.Duration("took", time.Since(start)))

	return &cards.Catalog{Records: records, Expires: expires}, nil
}

// FetchDeck downloads a deck by id. VisibilityAuto tries the published
// decklist first and falls back to a shared private deck when it does not
// exist.
func (c *Client) FetchDeck(ctx context.Context, id string, visibility cards.Visibility) (*cards.DeckSource, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("deck: empty id: %w", cards.ErrNotFound)
	}

	switch visibility {
	case cards.VisibilityPublic:
		return c.fetchDeck(ctx, id, false)
	case cards.VisibilityPrivate:
		return c.fetchDeck(ctx, id, true)
	}

	deck, err := c.fetchDeck(ctx, id, false)
	if err == nil || !errors.Is(err, cards.ErrNotFound) {
		return deck, err
	}
	slog.Debug("Public decklist not found, trying private deck",
		slog.String("type", "sys"),
		slog.String("deck", id))
	return c.fetchDeck(ctx, id, true)
}

func (c *Client) fetchDeck(ctx context.Context, id string, private bool) (*cards.DeckSource, error) {
	path, page := c.cfg.DecklistPath, "/en/decklist/"
	if private {
		path, page = c.cfg.DeckPath, "/en/deck/view/"
	}

	body, _, err := c.get(ctx, fmt.Sprintf(path, id))
	if err != nil {
		return nil, fmt.Errorf("deck %s: %w", id, err)
	}

	d, err := decodeDeck(body)
	if err != nil {
		return nil, fmt.Errorf("%w: deck %s: %w", cards.ErrProviderUnavailable, id, err)
	}

	return &cards.DeckSource{
		ID:      id,
		Name:    d.Name,
		Creator: d.creator(),
		URL:     c.cfg.BaseURL + page + id,
		Private: private,
		Cards:   quantities(d.Cards),
	}, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		return nil, nil, fmt.Errorf("%w: %w", cards.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return nil, nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read body: %w", cards.ErrProviderUnavailable, err)
	}
	return body, resp.Header, nil
}

func statusError(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		return cards.ErrNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden,
		status >= 300 && status < 400:
		return cards.ErrForbidden
	default:
		return fmt.Errorf("%w: unexpected status %d", cards.ErrProviderUnavailable, status)
	}
}
