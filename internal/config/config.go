// Package config handles configuration loading and defaults for geoconv.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/geoconv/internal/coords"

	"gopkg.in/yaml.v3"
)

// Output encodings.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config represents the root configuration file structure.
type Config struct {
	Coord       Coord  `yaml:"coord" json:"coord"`
	Output      string `yaml:"output,omitempty" json:"output,omitempty"`
	Compact     bool   `yaml:"compact,omitempty" json:"compact,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty" json:"concurrency,omitempty"` // batch workers
}

// Coord holds defaults for the coord command.
type Coord struct {
	From      coords.Format `yaml:"from,omitempty" json:"from,omitempty"`
	To        coords.Format `yaml:"to,omitempty" json:"to,omitempty"`
	Precision *int          `yaml:"precision,omitempty" json:"precision,omitempty"` // MGRS digit pairs
}

// Default returns the built-in configuration.
func Default() *Config {
	precision := coords.MaxPrecision
	return &Config{
		Coord: Coord{
			From:      coords.FormatAuto,
			To:        coords.FormatDecimal,
			Precision: &precision,
		},
		Output:      OutputText,
		Concurrency: 8,
	}
}

// Load reads the YAML configuration file on top of Default. A missing file
// is not an error when optional is set.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Coord.To == coords.FormatAuto {
		return errors.New("coord.to cannot be auto")
	}

	if p := c.Coord.Precision; p != nil && (*p < 0 || *p > coords.MaxPrecision) {
		return fmt.Errorf("coord.precision %d must be 0..%d", *p, coords.MaxPrecision)
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output %q", c.Output)
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency %d must be positive", c.Concurrency)
	}

	return nil
}

// PrecisionOr returns the configured MGRS precision, or def when unset.
func (c *Config) PrecisionOr(def int) int {
	if c.Coord.Precision == nil {
		return def
	}
	return *c.Coord.Precision
}
