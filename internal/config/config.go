// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates service configuration from layered
// sources: built-in defaults, an optional YAML file, and environment
// variables, in increasing order of precedence.
package config

import (
	"fmt"
	"math"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server         ServerConfig         `koanf:"server"`
	Database       DatabaseConfig       `koanf:"database"`
	Logging        LoggingConfig        `koanf:"logging"`
	Recommendation RecommendationConfig `koanf:"recommendation"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port. Default: 8000
	Port int `koanf:"port"`

	// CORSOrigins is the list of allowed CORS origins. Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitPerMinute caps requests per client IP. Default: 300
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`

	// ReadTimeout bounds request reading. Default: 15s
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds response writing. Default: 30s
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown. Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig contains DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file location. Default: /data/bookstar.duckdb
	Path string `koanf:"path"`

	// MaxMemory is the DuckDB memory limit. Default: 1GB
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// Seed loads demo catalog data on first start. Default: false
	Seed bool `koanf:"seed"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level. Default: info
	Level string `koanf:"level"`

	// Format is json or console. Default: json
	Format string `koanf:"format"`

	// Caller includes caller information in log lines. Default: false
	Caller bool `koanf:"caller"`
}

// RecommendationConfig contains the recommendation engine weights and counts.
// These are the recognized tuning options; the engine must never hard-code
// them.
type RecommendationConfig struct {
	// ReadBookWeight is the per-item weight for books on the read list.
	// Default: 0.7
	ReadBookWeight float64 `koanf:"read_book_weight"`

	// UnreadBookWeight is the per-item weight for books on the want list.
	// Default: 1.0
	UnreadBookWeight float64 `koanf:"unread_book_weight"`

	// CategoryPreferenceWeight multiplies category preference accumulation.
	// Default: 2.0
	CategoryPreferenceWeight float64 `koanf:"category_preference_weight"`

	// AuthorPreferenceWeight multiplies author preference accumulation.
	// Default: 1.5
	AuthorPreferenceWeight float64 `koanf:"author_preference_weight"`

	// DefaultRecommendationsCount is the result count when the request does
	// not specify one. Default: 10
	DefaultRecommendationsCount int `koanf:"default_recommendations_count"`

	// SimilarUsersCount is the neighbor count for the collaborative path.
	// Default: 5
	SimilarUsersCount int `koanf:"similar_users_count"`

	// ContentWeight and CollaborativeWeight are recognized blend weights.
	// They must sum to 1.0. The live combination policy does not consume
	// them; they are validated and carried for compatibility.
	ContentWeight       float64 `koanf:"content_weight"`
	CollaborativeWeight float64 `koanf:"collaborative_weight"`

	// CacheTTL bounds derived-data cache entries. 0 means entries live for
	// the process lifetime, which is the documented default behavior.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// Default returns a Config with all default values applied.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config with all default values applied.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8000,
			CORSOrigins:        []string{"*"},
			RateLimitPerMinute: 300,
			ReadTimeout:        15 * time.Second,
			WriteTimeout:       30 * time.Second,
			ShutdownTimeout:    10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/bookstar.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
			Seed:      false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommendation: RecommendationConfig{
			ReadBookWeight:              0.7,
			UnreadBookWeight:            1.0,
			CategoryPreferenceWeight:    2.0,
			AuthorPreferenceWeight:      1.5,
			DefaultRecommendationsCount: 10,
			SimilarUsersCount:           5,
			ContentWeight:               0.7,
			CollaborativeWeight:         0.3,
			CacheTTL:                    0,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 1 {
		return fmt.Errorf("server.rate_limit_per_minute must be positive, got %d", c.Server.RateLimitPerMinute)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	return c.Recommendation.Validate()
}

// Validate checks the recommendation weights and counts.
func (r *RecommendationConfig) Validate() error {
	if r.ReadBookWeight <= 0 {
		return fmt.Errorf("recommendation.read_book_weight must be positive, got %f", r.ReadBookWeight)
	}
	if r.UnreadBookWeight <= 0 {
		return fmt.Errorf("recommendation.unread_book_weight must be positive, got %f", r.UnreadBookWeight)
	}
	if r.CategoryPreferenceWeight <= 0 {
		return fmt.Errorf("recommendation.category_preference_weight must be positive, got %f", r.CategoryPreferenceWeight)
	}
	if r.AuthorPreferenceWeight <= 0 {
		return fmt.Errorf("recommendation.author_preference_weight must be positive, got %f", r.AuthorPreferenceWeight)
	}
	if r.DefaultRecommendationsCount < 1 {
		return fmt.Errorf("recommendation.default_recommendations_count must be positive, got %d", r.DefaultRecommendationsCount)
	}
	if r.SimilarUsersCount < 1 {
		return fmt.Errorf("recommendation.similar_users_count must be positive, got %d", r.SimilarUsersCount)
	}
	if math.Abs(r.ContentWeight+r.CollaborativeWeight-1.0) > 0.001 {
		return fmt.Errorf("recommendation.content_weight + collaborative_weight must sum to 1.0, got %f",
			r.ContentWeight+r.CollaborativeWeight)
	}
	if r.CacheTTL < 0 {
		return fmt.Errorf("recommendation.cache_ttl must be non-negative, got %v", r.CacheTTL)
	}
	return nil
}
