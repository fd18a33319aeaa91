package renderer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
	"github.com/df07/go-batch-pathtracer/pkg/integrator"
)

// Options controls the size and sampling of a render
type Options struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	TileSize        int   // Edge length of a square tile in pixels
	Workers         int   // Number of parallel workers, 0 for one per CPU
	Seed            int64 // Base seed of the per-tile random streams
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		TileSize:        32,
		Workers:         0,
		Seed:            42,
	}
}

// Validate reports options that cannot produce an image
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("image size %dx%d: %w", o.Width, o.Height, core.ErrInvalidInput)
	case o.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel %d: %w", o.SamplesPerPixel, core.ErrInvalidInput)
	case o.TileSize <= 0:
		return fmt.Errorf("tile size %d: %w", o.TileSize, core.ErrInvalidInput)
	case o.Workers < 0:
		return fmt.Errorf("worker count %d: %w", o.Workers, core.ErrInvalidInput)
	}
	return nil
}

// Raytracer renders a whole frame of a scene
type Raytracer struct {
	camera     RayGenerator
	world      geometry.Primitive
	integrator integrator.Integrator
	options    Options
	logger     *zap.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards all output.
func NewRaytracer(camera RayGenerator, world geometry.Primitive, integratorInst integrator.Integrator, options Options, logger *zap.Logger) (*Raytracer, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if camera == nil || world == nil || integratorInst == nil {
		return nil, fmt.Errorf("raytracer needs a camera, a world and an integrator: %w", core.ErrInvalidInput)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		options:    options,
		logger:     logger,
	}, nil
}

// Render splits the image into tiles, renders them in parallel and averages
// the samples of every pixel into a frame. The frame is only assembled after
// every tile has finished.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	start := time.Now()
	opts := rt.options

	tiles := NewTileGrid(opts.Width, opts.Height, opts.TileSize, opts.Seed)
	pixelStats := make([][]PixelStats, opts.Height)
	for j := range pixelStats {
		pixelStats[j] = make([]PixelStats, opts.Width)
	}

	tileRenderer := NewTileRenderer(rt.camera, rt.world, rt.integrator, opts.Width, opts.Height, opts.SamplesPerPixel)
	pool := NewWorkerPool(tileRenderer, opts.Workers, rt.logger)

	rt.logger.Info("rendering",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Int("spp", opts.SamplesPerPixel),
		zap.Int("tiles", len(tiles)),
		zap.Int("workers", pool.GetNumWorkers()),
	)

	results, err := pool.Render(ctx, tiles, pixelStats)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	frame := NewFrame(opts.Width, opts.Height)
	for j := 0; j < opts.Height; j++ {
		for i := 0; i < opts.Width; i++ {
			frame.Set(i, j, pixelStats[j][i].GetColor())
		}
	}

	stats := RenderStats{
		TotalPixels:     opts.Width * opts.Height,
		SamplesPerPixel: opts.SamplesPerPixel,
		Tiles:           len(tiles),
		Workers:         pool.GetNumWorkers(),
		Duration:        time.Since(start),
	}
	for _, result := range results {
		stats.TotalSamples += result.Samples
	}

	rt.logger.Info("render complete",
		zap.Duration("duration", stats.Duration),
		zap.Int("samples", stats.TotalSamples),
	)

	return frame, stats, nil
}
