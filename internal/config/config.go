// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of extraction workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the job id deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// TeamFile points at the default roster (YAML or JSON). Empty means
	// requests must carry their own team.
	TeamFile string `koanf:"team_file"`

	// MaxSentences caps the sentences accepted per request; 0 disables the cap.
	MaxSentences int `koanf:"max_sentences"`

	// Timezone is the IANA zone deadlines are resolved in.
	Timezone string `koanf:"timezone"`

	// MaxJobResults caps finished jobs kept in memory.
	MaxJobResults int `koanf:"max_job_results"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		QueueSize:     1_000,
		WorkerCount:   runtime.NumCPU(),
		DedupeSize:    10_000,
		MaxSentences:  5_000,
		Timezone:      "UTC",
		MaxJobResults: 10_000,
	}
}

// Location resolves Timezone, falling back to UTC when empty.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}
