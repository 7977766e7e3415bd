package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// Config is loaded once at startup and passed to every constructor.
type Config struct {
	Port      string `env:"PORT,      default=5000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"SECRET_KEY, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Store    StoreConfig
	Mongo    MongoConfig
	Upstream UpstreamConfig
	CORS     CORSConfig
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=sqlite"`
	Path   string `env:"DATABASE,     default=places.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=places"`
}

type UpstreamConfig struct {
	WeatherBaseURL string        `env:"WEATHER_BASE_URL, default=https://api.open-meteo.com/v1/forecast"`
	PlacesBaseURL  string        `env:"PLACES_BASE_URL,  default=https://api.geoapify.com/v2/places"`
	GeoapifyKey    string        `env:"GEOAPIFY_KEY"`
	Timeout        time.Duration `env:"UPSTREAM_TIMEOUT, default=10s"`
}

type CORSConfig struct {
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS, default=*"`
}

// Load reads configuration through l; pass envconfig.OsLookuper() in main.
func Load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values go-envconfig cannot express in tags.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("config: SECRET_KEY must not be blank")
	}
	switch c.Store.Driver {
	case StoreSQLite, StoreMongo:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
