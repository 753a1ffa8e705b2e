// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero read weight", func(c *Config) { c.Weights.ReadBook = 0 }},
		{"negative unread weight", func(c *Config) { c.Weights.UnreadBook = -0.5 }},
		{"zero category weight", func(c *Config) { c.Weights.CategoryPreference = 0 }},
		{"zero author weight", func(c *Config) { c.Weights.AuthorPreference = 0 }},
		{"content weight above one", func(c *Config) { c.Weights.Content = 1.2; c.Weights.Collaborative = -0.2 }},
		{"blend weights off balance", func(c *Config) { c.Weights.Content = 0.5; c.Weights.Collaborative = 0.6 }},
		{"zero default count", func(c *Config) { c.Limits.DefaultCount = 0 }},
		{"zero similar users", func(c *Config) { c.Limits.SimilarUsers = 0 }},
		{"negative cache TTL", func(c *Config) { c.Cache.TTL = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
