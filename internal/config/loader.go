package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if EXPLORE_CONFIG is set
//  3. env (prefix EXPLORE_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("EXPLORE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: EXPLORE_ADDR, EXPLORE_QUEUE_SIZE, ...
	// Map env keys like EXPLORE_QUEUE_SIZE -> queue_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("EXPLORE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "explore_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.MaxPageSize < 1 {
		return fmt.Errorf("%w: max_page_size must be positive", ErrInvalidConfig)
	}
	if c.RecencyScaleDays <= 0 {
		return fmt.Errorf("%w: recency_scale_days must be positive", ErrInvalidConfig)
	}
	if c.DiversityBonus < 1 {
		return fmt.Errorf("%w: diversity_bonus must be at least 1", ErrInvalidConfig)
	}
	for name, w := range map[string]float64{
		"recency_weight":    c.RecencyWeight,
		"popularity_weight": c.PopularityWeight,
		"trending_weight":   c.TrendingWeight,
		"diversity_weight":  c.DiversityWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name)
		}
	}
	return nil
}
