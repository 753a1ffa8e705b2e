// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Config holds the engine tuning knobs. All weights and limits are
// validated up front so scorers never need to re-check them.
type Config struct {
	Weights WeightConfig
	Limits  LimitConfig
	Cache   CacheConfig
}

// WeightConfig holds the preference and scoring weights.
type WeightConfig struct {
	// ReadBook down-weights books the member has already read
	// relative to books they merely want to read.
	ReadBook   float64
	UnreadBook float64

	// CategoryPreference and AuthorPreference scale each attribute's
	// contribution when accumulating preference scores.
	CategoryPreference float64
	AuthorPreference   float64

	// Content and Collaborative are the blend weights. They must sum to
	// 1.0. The live combination policy interleaves by count rather than
	// blending scores, so these are validated for configuration
	// compatibility but do not alter ranking.
	Content       float64
	Collaborative float64
}

// LimitConfig holds result and search size limits.
type LimitConfig struct {
	// DefaultCount is the recommendation count used when a request does
	// not specify one.
	DefaultCount int

	// SimilarUsers is k, the number of nearest peers to search for.
	SimilarUsers int
}

// CacheConfig controls the derived-data cache.
type CacheConfig struct {
	// TTL bounds the lifetime of cached derived data. Zero means entries
	// live for the lifetime of the process.
	TTL time.Duration
}

// DefaultConfig returns the engine defaults matching the production
// service configuration.
func DefaultConfig() Config {
	return Config{
		Weights: WeightConfig{
			ReadBook:           0.7,
			UnreadBook:         1.0,
			CategoryPreference: 2.0,
			AuthorPreference:   1.5,
			Content:            0.7,
			Collaborative:      0.3,
		},
		Limits: LimitConfig{
			DefaultCount: 10,
			SimilarUsers: 5,
		},
		Cache: CacheConfig{
			TTL: 0,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Weights.ReadBook <= 0 {
		return fmt.Errorf("read book weight must be positive, got %v", c.Weights.ReadBook)
	}
	if c.Weights.UnreadBook <= 0 {
		return fmt.Errorf("unread book weight must be positive, got %v", c.Weights.UnreadBook)
	}
	if c.Weights.CategoryPreference <= 0 {
		return fmt.Errorf("category preference weight must be positive, got %v", c.Weights.CategoryPreference)
	}
	if c.Weights.AuthorPreference <= 0 {
		return fmt.Errorf("author preference weight must be positive, got %v", c.Weights.AuthorPreference)
	}
	if c.Weights.Content < 0 || c.Weights.Content > 1 {
		return fmt.Errorf("content weight must be in [0,1], got %v", c.Weights.Content)
	}
	if c.Weights.Collaborative < 0 || c.Weights.Collaborative > 1 {
		return fmt.Errorf("collaborative weight must be in [0,1], got %v", c.Weights.Collaborative)
	}
	if sum := c.Weights.Content + c.Weights.Collaborative; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("content and collaborative weights must sum to 1.0, got %v", sum)
	}
	if c.Limits.DefaultCount <= 0 {
		return fmt.Errorf("default recommendation count must be positive, got %d", c.Limits.DefaultCount)
	}
	if c.Limits.SimilarUsers <= 0 {
		return fmt.Errorf("similar users count must be positive, got %d", c.Limits.SimilarUsers)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache TTL must not be negative, got %v", c.Cache.TTL)
	}
	return nil
}
