package spaces

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
)

const catalogObject = "catalog.json"

type Config struct {
	Key      string `toml:"key"`
	Secret   string `toml:"secret"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	Root     string `toml:"root"`
	Endpoint string `toml:"endpoint"`
}

func (c Config) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("https://%s.digitaloceanspaces.com", c.Region)
}

type objectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Mirror stores the card catalog as a single JSON object in a Spaces (or
// any S3 compatible) bucket.
type Mirror struct {
	client objectStore
	bucket string
	key    string
	now    func() time.Time
}

var _ cards.CatalogMirror = (*Mirror)(nil)

func New(ctx context.Context, cfg Config) (*Mirror, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: cfg.endpoint()}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	return newMirror(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Root), nil
}

func newMirror(client objectStore, bucket, root string) *Mirror {
	key := catalogObject
	if root = strings.Trim(root, "/"); root != "" {
		key = root + "/" + catalogObject
	}
	return &Mirror{client: client, bucket: bucket, key: key, now: time.Now}
}

type catalogDoc struct {
	SavedAt time.Time `json:"saved_at"`
	Cards   []cardDoc `json:"cards"`
}

type cardDoc struct {
	Code            string   `json:"code"`
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	Subtypes        []string `json:"subtypes,omitempty"`
	Side            string   `json:"side"`
	Faction         string   `json:"faction"`
	Uniqueness      bool     `json:"uniqueness,omitempty"`
	URL             string   `json:"url,omitempty"`
	Cost            *int     `json:"cost,omitempty"`
	FactionCost     *int     `json:"factioncost,omitempty"`
	Strength        *int     `json:"strength,omitempty"`
	MemoryUnits     *int     `json:"memoryunits,omitempty"`
	Trash           *int     `json:"trash,omitempty"`
	AdvancementCost *int     `json:"advancementcost,omitempty"`
	MinimumDeckSize *int     `json:"minimumdecksize,omitempty"`
	InfluenceLimit  *int     `json:"influencelimit,omitempty"`
	AgendaPoints    *int     `json:"agendapoints,omitempty"`
	BaseLink        *int     `json:"baselink,omitempty"`
}

func (m *Mirror) SaveCatalog(ctx context.Context, records []*cards.CardRecord) error {
	doc := catalogDoc{SavedAt: m.now().UTC(), Cards: make([]cardDoc, 0, len(records))}
	for _, r := range records {
		doc.Cards = append(doc.Cards, cardDoc{
			Code:            r.Code,
			Title:           r.Title,
			Type:            string(r.Type),
			Subtypes:        r.Subtypes,
			Side:            r.Side,
			Faction:         r.Faction,
			Uniqueness:      r.Uniqueness,
			URL:             r.URL,
			Cost:            r.Cost,
			FactionCost:     r.FactionCost,
			Strength:        r.Strength,
			MemoryUnits:     r.MemoryUnits,
			Trash:           r.Trash,
			AdvancementCost: r.AdvancementCost,
			MinimumDeckSize: r.MinimumDeckSize,
			InfluenceLimit:  r.InfluenceLimit,
			AgendaPoints:    r.AgendaPoints,
			BaseLink:        r.BaseLink,
		})
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(m.bucket),
		Key:          aws.String(m.key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", m.key, err)
	}

	slog.Info("Catalog mirrored to Spaces",
		slog.String("type", "sys"),
		slog.String("key", m.key),
		slog.Int("cards", len(doc.Cards)))
	return nil
}

func (m *Mirror) LoadCatalog(ctx context.Context) ([]*cards.CardRecord, error) {
	out, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(m.key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%s: %w", m.key, cards.ErrNotFound)
		}
		return nil, fmt.Errorf("download %s: %w", m.key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", m.key, err)
	}

	var doc catalogDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.key, err)
	}

	records := make([]*cards.CardRecord, len(doc.Cards))
	for i, c := range doc.Cards {
		records[i] = &cards.CardRecord{
			Code:            c.Code,
			Title:           c.Title,
			Type:            cards.Type(c.Type),
			Subtypes:        c.Subtypes,
			Side:            c.Side,
			Faction:         c.Faction,
			Uniqueness:      c.Uniqueness,
			URL:             c.URL,
			Cost:            c.Cost,
			FactionCost:     c.FactionCost,
			Strength:        c.Strength,
			MemoryUnits:     c.MemoryUnits,
			Trash:           c.Trash,
			AdvancementCost: c.AdvancementCost,
			MinimumDeckSize: c.MinimumDeckSize,
			InfluenceLimit:  c.InfluenceLimit,
			AgendaPoints:    c.AgendaPoints,
			BaseLink:        c.BaseLink,
		}
	}

	slog.Info("Catalog loaded from Spaces",
		slog.String("type", "sys"),
		slog.String("key", m.key),
		slog.Time("saved_at", doc.SavedAt),
		slog.Int("cards", len(records)))
	return records, nil
}
