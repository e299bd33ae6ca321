// Package config loads build defaults from an optional TOML file.
// Command-line flags override anything set here.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/digipres-tools/droidsig/core/errors"
)

const (
	defaultPronomDir = "./pronom"
	defaultOutput    = "DROID_SignatureFile_Simple.xml"
	defaultWorkers   = 4
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Config holds the resolved build settings.
type Config struct {
	PronomDir  string `toml:"pronom_dir"`
	Output     string `toml:"output"`
	OutputDate bool   `toml:"output_date"`
	Workers    int    `toml:"workers"`
	CatalogDB  string `toml:"catalog_db"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		PronomDir: defaultPronomDir,
		Output:    defaultOutput,
		Workers:   defaultWorkers,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &errors.IOError{Operation: "read config", Path: path, Err: err}
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, &errors.ParseError{Format: "TOML", Path: path, Message: err.Error(), Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the settings for values the build cannot run with.
func (c Config) Validate() error {
	if c.PronomDir == "" {
		return &errors.ValidationError{Field: "pronom_dir", Message: "must not be empty"}
	}
	if c.Output == "" {
		return &errors.ValidationError{Field: "output", Message: "must not be empty"}
	}
	if c.Workers < 1 {
		return &errors.ValidationError{
			Field:   "workers",
			Value:   fmt.Sprintf("%d", c.Workers),
			Message: "must be at least 1",
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &errors.ValidationError{Field: "log_level", Value: c.LogLevel, Message: "must be debug, info, warn or error"}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return &errors.ValidationError{Field: "log_format", Value: c.LogFormat, Message: "must be text or json"}
	}
	return nil
}
