// Package config loads the optional gfx.yaml settings of the gfx command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the working directory.
const FileName = "gfx.yaml"

// DefaultJPEGQuality is used when the file leaves quality unset.
const DefaultJPEGQuality = 90

// Config represents the optional gfx.yaml configuration.
type Config struct {
	Workers     int    `yaml:"workers,omitempty"`
	Seed        int64  `yaml:"seed,omitempty"`
	JPEGQuality int    `yaml:"jpeg_quality,omitempty"`
	OutputDir   string `yaml:"output_dir,omitempty"`
	Verbose     bool   `yaml:"verbose,omitempty"`
}

// LoadOptional reads the file at path. A missing file yields defaults;
// an empty path means FileName in dir.
func LoadOptional(dir, path string) (*Config, error) {
	if path == "" {
		path = filepath.Join(dir, FileName)
	}
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.resolve(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg.resolve(), nil
}

// resolve fills defaults and clamps out-of-range values.
func (c *Config) resolve() *Config {
	c.Workers = max(c.Workers, 0)
	if c.JPEGQuality == 0 {
		c.JPEGQuality = DefaultJPEGQuality
	}
	c.JPEGQuality = lo.Clamp(c.JPEGQuality, 1, 100)
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return c
}
