// Package config holds the settings of a batch render.
package config

import (
	"github.com/df07/go-batch-pathtracer/pkg/renderer"
)

// Config holds all render settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// RenderConfig controls image size, sampling and parallelism.
type RenderConfig struct {
	Width           int   `yaml:"width"`
	Height          int   `yaml:"height"`
	SamplesPerPixel int   `yaml:"samples_per_pixel"`
	MaxDepth        int   `yaml:"max_depth"`
	TileSize        int   `yaml:"tile_size"`
	Workers         int   `yaml:"workers"` // 0 for one per CPU
	Seed            int64 `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// OutputConfig says where the finished image goes.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:           400,
			Height:          225,
			SamplesPerPixel: 100,
			MaxDepth:        50,
			TileSize:        32,
			Workers:         0,
			Seed:            42,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Output: OutputConfig{
			Path: "output/render.png",
		},
	}
}

// AspectRatio is width over height of the output image.
func (c *Config) AspectRatio() float64 {
	return float64(c.Render.Width) / float64(c.Render.Height)
}

// RendererOptions converts the render section into renderer options.
func (c *Config) RendererOptions() renderer.Options {
	return renderer.Options{
		Width:           c.Render.Width,
		Height:          c.Render.Height,
		SamplesPerPixel: c.Render.SamplesPerPixel,
		TileSize:        c.Render.TileSize,
		Workers:         c.Render.Workers,
		Seed:            c.Render.Seed,
	}
}
