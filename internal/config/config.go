package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"meet-halfway/internal/models"

	"github.com/spf13/viper"
)

// Config holds every runtime setting. Values come from app.env in the given
// path, overridden by the process environment.
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`

	GoogleMapsAPIKey string        `mapstructure:"GOOGLE_MAPS_API_KEY"`
	MapsRateLimit    int           `mapstructure:"MAPS_RATE_LIMIT"`
	RequestTimeout   time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	EnrichmentPolicy string        `mapstructure:"ENRICHMENT_POLICY"`
	CostCacheTTL     time.Duration `mapstructure:"COST_CACHE_TTL"`
	SessionTTL       time.Duration `mapstructure:"SESSION_TTL"`

	DefaultCategory     string `mapstructure:"DEFAULT_CATEGORY"`
	DefaultRadiusMeters int    `mapstructure:"DEFAULT_RADIUS_METERS"`
	DefaultMode         string `mapstructure:"DEFAULT_MODE"`

	LogLevel    string   `mapstructure:"LOG_LEVEL"`
	LogSuppress []string `mapstructure:"LOG_SUPPRESS"`

	AWSRegion      string `mapstructure:"AWS_REGION"`
	SESFromAddress string `mapstructure:"SES_FROM_ADDRESS"`
}

// Enrichment policies.
const (
	PolicyLazy  = "lazy"
	PolicyBatch = "batch"
)

// LoadConfig reads app.env from path (if present) and the environment.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	v.SetDefault("GOOGLE_MAPS_API_KEY", "")
	v.SetDefault("MAPS_RATE_LIMIT", 50)
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("ENRICHMENT_POLICY", PolicyLazy)
	v.SetDefault("COST_CACHE_TTL", "30m")
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("DEFAULT_CATEGORY", "restaurant")
	v.SetDefault("DEFAULT_RADIUS_METERS", 8047)
	v.SetDefault("DEFAULT_MODE", "time")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_SUPPRESS", "")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("SES_FROM_ADDRESS", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config.LoadConfig read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.LoadConfig unmarshal: %w", err)
	}
	cfg.LogSuppress = splitList(v.GetString("LOG_SUPPRESS"))

	if cfg.EnrichmentPolicy != PolicyLazy && cfg.EnrichmentPolicy != PolicyBatch {
		return Config{}, fmt.Errorf("config.LoadConfig: unknown ENRICHMENT_POLICY %q", cfg.EnrichmentPolicy)
	}
	if !models.OptimizationMode(cfg.DefaultMode).Valid() {
		return Config{}, fmt.Errorf("config.LoadConfig: unknown DEFAULT_MODE %q", cfg.DefaultMode)
	}
	if !models.Category(cfg.DefaultCategory).Valid() {
		return Config{}, fmt.Errorf("config.LoadConfig: unknown DEFAULT_CATEGORY %q", cfg.DefaultCategory)
	}
	if !models.ValidRadius(cfg.DefaultRadiusMeters) {
		return Config{}, fmt.Errorf("config.LoadConfig: DEFAULT_RADIUS_METERS %d is not a preset", cfg.DefaultRadiusMeters)
	}
	return cfg, nil
}

// MapsReady reports whether enough is configured to talk to the mapping platform.
func (c Config) MapsReady() bool {
	return c.GoogleMapsAPIKey != ""
}

// splitList turns "a|b|c" into a slice. Patterns may contain commas, so the
// separator is a pipe.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
