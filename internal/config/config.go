package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"8000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Recognition
	SimilarityThreshold float64       `envconfig:"SIMILARITY_THRESHOLD" default:"0.4"`
	GalleryCacheTTL     time.Duration `envconfig:"GALLERY_CACHE_TTL" default:"300s"`
	EmbeddingDim        int           `envconfig:"EMBEDDING_DIM" default:"512"`
	MaxFacesPerImage    int           `envconfig:"MAX_FACES_PER_IMAGE" default:"20"`

	// Embedding extractor sidecar
	ExtractorURL        string        `envconfig:"EXTRACTOR_URL" default:"http://localhost:8500"`
	ExtractorTimeout    time.Duration `envconfig:"EXTRACTOR_TIMEOUT" default:"30s"`
	ExtractorRetryCount int           `envconfig:"EXTRACTOR_RETRY_COUNT" default:"3"`

	// API
	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"100"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	// envconfig treats a set-but-empty variable as present
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("load config: DATABASE_URL is required")
	}
	if cfg.SimilarityThreshold <= -1 || cfg.SimilarityThreshold >= 1 {
		return nil, fmt.Errorf("load config: similarity threshold %.2f out of range (-1, 1)", cfg.SimilarityThreshold)
	}
	if cfg.EmbeddingDim <= 0 {
		return nil, fmt.Errorf("load config: embedding dimension must be positive")
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
