// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxPageSize caps the limit query parameter on every explore route.
	MaxPageSize int `koanf:"max_page_size"`

	// RecencyScaleDays sets the e-folding time of the recency decay.
	RecencyScaleDays float64 `koanf:"recency_scale_days"`

	// RecencyWeight, PopularityWeight, TrendingWeight and DiversityWeight
	// are the composite score factor weights.
	RecencyWeight    float64 `koanf:"recency_weight"`
	PopularityWeight float64 `koanf:"popularity_weight"`
	TrendingWeight   float64 `koanf:"trending_weight"`
	DiversityWeight  float64 `koanf:"diversity_weight"`

	// DiversityBonus is the multiplier applied to the first car of each make.
	DiversityBonus float64 `koanf:"diversity_bonus"`

	// TrendingMinRecentViews and TrendingScoreThreshold gate the
	// is_trending badge.
	TrendingMinRecentViews int     `koanf:"trending_min_recent_views"`
	TrendingScoreThreshold float64 `koanf:"trending_score_threshold"`

	// EventQueueSize bounds the in-memory view-event queue.
	EventQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the event deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// DemoData seeds the in-memory store with a sample garage on startup.
	DemoData bool `koanf:"demo_data"`
}

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		MaxPageSize:            100,
		RecencyScaleDays:       30,
		RecencyWeight:          0.3,
		PopularityWeight:       0.4,
		TrendingWeight:         0.2,
		DiversityWeight:        0.1,
		DiversityBonus:         1.5,
		TrendingMinRecentViews: 5,
		TrendingScoreThreshold: 0.3,
		EventQueueSize:         100_000,
		WorkerCount:            runtime.NumCPU() * 2,
		DedupeSize:             50_000,
		DemoData:               false,
	}
	return c
}
