// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override the Vite dev server default.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"false"`

	Auth     AuthConfig
	Cache    CacheConfig
	Geocoder GeocoderConfig
}

// AuthConfig controls bearer token verification. Tokens are issued by an
// external identity provider and signed with a shared HS256 secret.
type AuthConfig struct {
	// Secret is the HMAC key used to verify tokens. Required.
	Secret string `env:"JWT_SECRET,required,notEmpty"`
	// Issuer, when set, must match the token's iss claim.
	Issuer string `env:"JWT_ISSUER"`
	// Audience, when set, must be present in the token's aud claim.
	Audience string `env:"JWT_AUDIENCE"`
}

// CacheConfig controls the geocoding result cache.
type CacheConfig struct {
	// RedisURL selects the Redis store, e.g. redis://localhost:6379/0.
	// Empty means an in-process memory store.
	RedisURL string        `env:"REDIS_URL"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	Prefix   string        `env:"CACHE_PREFIX" envDefault:"trip-planner-"`
}

// GeocoderConfig points at a Nominatim-compatible search endpoint.
type GeocoderConfig struct {
	BaseURL   string        `env:"GEOCODER_URL" envDefault:"https://nominatim.openstreetmap.org"`
	UserAgent string        `env:"GEOCODER_USER_AGENT" envDefault:"trip-planner/1.0"`
	Timeout   time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming any required variables that are not set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	cfg.Geocoder.BaseURL = strings.TrimRight(cfg.Geocoder.BaseURL, "/")

	if cfg.Cache.TTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be positive")
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	return cfg, nil
}

// trimAll trims every entry and drops the empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
