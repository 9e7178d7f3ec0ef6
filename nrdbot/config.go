package nrdbot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/catalog"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/decklists"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/search"
	"github.com/ellavondegurechaff/nrdb-bot/internal/gateways/database"
	"github.com/ellavondegurechaff/nrdb-bot/internal/gateways/nrdb"
	"github.com/ellavondegurechaff/nrdb-bot/internal/gateways/spaces"
	"github.com/pelletier/go-toml/v2"
)

// Mirror kinds.
const (
	MirrorNone   = ""
	MirrorDB     = "db"
	MirrorSpaces = "spaces"
)

const defaultSuggestLimit = 10

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig is used when no config file is given.
func DefaultConfig() *Config {
	var cfg Config
	cfg.Log.Level = slog.LevelInfo
	cfg.applyDefaults()
	return &cfg
}

type Config struct {
	Log    LogConfig         `toml:"log"`
	NRDB   NRDBConfig        `toml:"nrdb"`
	Search SearchConfig      `toml:"search"`
	Mirror string            `toml:"mirror"`
	DB     database.DBConfig `toml:"db"`
	Spaces spaces.Config     `toml:"spaces"`
}

type LogConfig struct {
	Level   slog.Level `toml:"level"`
	NoColor bool       `toml:"no_color"`
}

type NRDBConfig struct {
	BaseURL       string   `toml:"base_url"`
	CardsPath     string   `toml:"cards_path"`
	DecklistPath  string   `toml:"decklist_path"`
	DeckPath      string   `toml:"deck_path"`
	UserAgent     string   `toml:"user_agent"`
	Timeout       Duration `toml:"timeout"`
	DefaultTTL    Duration `toml:"default_ttl"`
	RetryInterval Duration `toml:"retry_interval"`
	Concurrency   int      `toml:"concurrency"`
}

type SearchConfig struct {
	MinScore      float64 `toml:"min_score"`
	MaxDistance   int     `toml:"max_distance"`
	MinTermLength int     `toml:"min_term_length"`
	CacheSize     int     `toml:"cache_size"`
	SuggestLimit  int     `toml:"suggest_limit"`
}

// Duration reads values like "15s" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (c *Config) applyDefaults() {
	def := nrdb.DefaultConfig()
	if c.NRDB.BaseURL == "" {
		c.NRDB.BaseURL = def.BaseURL
	}
	if c.NRDB.CardsPath == "" {
		c.NRDB.CardsPath = def.CardsPath
	}
	if c.NRDB.DecklistPath == "" {
		c.NRDB.DecklistPath = def.DecklistPath
	}
	if c.NRDB.DeckPath == "" {
		c.NRDB.DeckPath = def.DeckPath
	}
	if c.NRDB.UserAgent == "" {
		c.NRDB.UserAgent = def.UserAgent
	}
	if c.NRDB.Timeout.Duration == 0 {
		c.NRDB.Timeout.Duration = def.Timeout
	}
	if c.NRDB.DefaultTTL.Duration == 0 {
		c.NRDB.DefaultTTL.Duration = catalog.DefaultTTL
	}
	if c.NRDB.RetryInterval.Duration == 0 {
		c.NRDB.RetryInterval.Duration = catalog.DefaultRetryInterval
	}
	if c.NRDB.Concurrency == 0 {
		c.NRDB.Concurrency = decklists.DefaultConcurrency
	}

	if c.Search.MinScore == 0 {
		c.Search.MinScore = search.DefaultMinScore
	}
	if c.Search.MaxDistance == 0 {
		c.Search.MaxDistance = search.DefaultMaxDistance
	}
	if c.Search.MinTermLength == 0 {
		c.Search.MinTermLength = search.DefaultMinTermLength
	}
	if c.Search.CacheSize == 0 {
		c.Search.CacheSize = catalog.DefaultCacheSize
	}
	if c.Search.SuggestLimit == 0 {
		c.Search.SuggestLimit = defaultSuggestLimit
	}

	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.DB.PoolSize == 0 {
		c.DB.PoolSize = 10
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.NRDB.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("nrdb.concurrency must be positive, got %d", c.NRDB.Concurrency))
	}
	if c.NRDB.Timeout.Duration < 0 || c.NRDB.DefaultTTL.Duration < 0 || c.NRDB.RetryInterval.Duration < 0 {
		errs = append(errs, errors.New("nrdb durations must not be negative"))
	}
	if c.Search.MinScore < 0 || c.Search.MinScore > 2 {
		errs = append(errs, fmt.Errorf("search.min_score must be within [0, 2], got %v", c.Search.MinScore))
	}
	if c.Search.MaxDistance < 0 {
		errs = append(errs, fmt.Errorf("search.max_distance must not be negative, got %d", c.Search.MaxDistance))
	}
	if c.Search.MinTermLength < 1 {
		errs = append(errs, fmt.Errorf("search.min_term_length must be positive, got %d", c.Search.MinTermLength))
	}
	if c.Search.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("search.cache_size must not be negative, got %d", c.Search.CacheSize))
	}

	switch c.Mirror {
	case MirrorNone:
	case MirrorDB:
		if c.DB.Host == "" || c.DB.Database == "" {
			errs = append(errs, errors.New("mirror = \"db\" needs db.host and db.database"))
		}
	case MirrorSpaces:
		if c.Spaces.Bucket == "" || c.Spaces.Region == "" {
			errs = append(errs, errors.New("mirror = \"spaces\" needs spaces.bucket and spaces.region"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown mirror %q", c.Mirror))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) SearchOptions() search.Options {
	return search.Options{
		MinTermLength: c.Search.MinTermLength,
		MaxDistance:   c.Search.MaxDistance,
		MinScore:      c.Search.MinScore,
	}
}

func (c *Config) CatalogOptions() catalog.Options {
	return catalog.Options{
		Search:        c.SearchOptions(),
		CacheSize:     c.Search.CacheSize,
		DefaultTTL:    c.NRDB.DefaultTTL.Duration,
		RetryInterval: c.NRDB.RetryInterval.Duration,
	}
}

func (c *Config) ClientConfig() nrdb.Config {
	return nrdb.Config{
		BaseURL:      c.NRDB.BaseURL,
		CardsPath:    c.NRDB.CardsPath,
		DecklistPath: c.NRDB.DecklistPath,
		DeckPath:     c.NRDB.DeckPath,
		Timeout:      c.NRDB.Timeout.Duration,
		UserAgent:    c.NRDB.UserAgent,
	}
}
