package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// Load returns the defaults overlaid with the YAML file at path. An empty path
// returns the defaults. Command line flags are applied by the caller.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	return cfg, nil
}

// loadFromFile merges the YAML file at path into cfg. Keys missing from the
// file keep their current values; unknown keys are errors.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%v: %w", err, core.ErrInvalidInput)
	}
	return nil
}

// Validate rejects settings that cannot produce an image.
func (c *Config) Validate() error {
	r := c.Render
	switch {
	case r.Width <= 0 || r.Height <= 0:
		return fmt.Errorf("image size %dx%d: %w", r.Width, r.Height, core.ErrInvalidInput)
	case r.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel %d: %w", r.SamplesPerPixel, core.ErrInvalidInput)
	case r.MaxDepth <= 0:
		return fmt.Errorf("max depth %d: %w", r.MaxDepth, core.ErrInvalidInput)
	case r.TileSize <= 0:
		return fmt.Errorf("tile size %d: %w", r.TileSize, core.ErrInvalidInput)
	case r.Workers < 0:
		return fmt.Errorf("worker count %d: %w", r.Workers, core.ErrInvalidInput)
	case c.Output.Path == "":
		return fmt.Errorf("empty output path: %w", core.ErrInvalidInput)
	}
	return nil
}
