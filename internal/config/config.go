// Package config loads and validates run configuration for the command-line
// tools. Values are passed explicitly into the core; nothing here is read
// ambiently by the comparison pipeline.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/baditaflorin/go_shingle_similarity/internal/core/domain"
)

// Config holds the parameters of a comparison run.
type Config struct {
	// ShingleSize is the number of tokens per shingle.
	ShingleSize int `toml:"shingle_size"`
	// Threshold is the minimum similarity a pair must exceed to be reported.
	Threshold float64 `toml:"threshold"`
	// MaxResults caps the report. Zero means uncapped.
	MaxResults int `toml:"max_results"`
	// Workers is the comparison worker count. Zero means all CPUs.
	Workers int `toml:"workers"`
	// Recursive descends into subdirectories during discovery.
	Recursive bool `toml:"recursive"`
	// Extensions restricts discovery to the given file extensions.
	// Empty means all files.
	Extensions []string `toml:"extensions"`
}

// Default returns the default run configuration.
func Default() Config {
	return Config{
		ShingleSize: 3,
		Threshold:   0.5,
		MaxResults:  0,
		Workers:     0,
		Recursive:   false,
	}
}

// Load reads a TOML configuration file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration. Failures are fatal for a run and carry
// the offending parameter name.
func (c Config) Validate() error {
	if c.ShingleSize < 1 {
		return &domain.InvalidParameterError{
			Param:  "shingle_size",
			Reason: "must be at least 1",
		}
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return &domain.InvalidParameterError{
			Param:  "threshold",
			Reason: "must be between 0 and 1",
		}
	}
	if c.MaxResults < 0 {
		return &domain.InvalidParameterError{
			Param:  "max_results",
			Reason: "must not be negative",
		}
	}
	if c.Workers < 0 {
		return &domain.InvalidParameterError{
			Param:  "workers",
			Reason: "must not be negative",
		}
	}
	return nil
}
