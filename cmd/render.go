package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/go-batch-pathtracer/pkg/config"
	"github.com/df07/go-batch-pathtracer/pkg/integrator"
	"github.com/df07/go-batch-pathtracer/pkg/loaders"
	"github.com/df07/go-batch-pathtracer/pkg/logging"
	"github.com/df07/go-batch-pathtracer/pkg/renderer"
	"github.com/df07/go-batch-pathtracer/pkg/scene"
)

// Render a still frame.
func Render(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return err
	}
	applyFlags(ctx, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogging(ctx, cfg)
	defer logging.Sync(logger)

	sceneOpts := scene.Options{
		AspectRatio: cfg.AspectRatio(),
		MeshPath:    ctx.String("mesh"),
		Seed:        cfg.Render.Seed,
	}
	sc, err := scene.DefaultRegistry().Build(ctx.String("scene"), sceneOpts, logger)
	if err != nil {
		return err
	}
	logger.Info("scene ready", zap.String("scene", sc.Name), zap.Int("primitives", len(sc.Primitives)))

	pathTracer := integrator.NewPathTracer()
	pathTracer.MaxDepth = cfg.Render.MaxDepth
	pathTracer.Background = sc.Background

	raytracer, err := renderer.NewRaytracer(sc.Camera, sc.World, pathTracer, cfg.RendererOptions(), logger)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	frame, stats, err := raytracer.Render(runCtx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output.Path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := loaders.SavePNG(cfg.Output.Path, frame.ToRGBA()); err != nil {
		return err
	}
	logger.Info("wrote frame", zap.String("path", cfg.Output.Path))

	displayRenderStats(ctx.App.Writer, sc.Name, stats)
	return nil
}

// applyFlags applies flags given on the command line over cfg.
func applyFlags(ctx *cli.Context, cfg *config.Config) {
	if ctx.IsSet("width") {
		cfg.Render.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Render.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		cfg.Render.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		cfg.Render.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("tile-size") {
		cfg.Render.TileSize = ctx.Int("tile-size")
	}
	if ctx.IsSet("workers") {
		cfg.Render.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("seed") {
		cfg.Render.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("out") {
		cfg.Output.Path = ctx.String("out")
	}
}

func displayRenderStats(w io.Writer, sceneName string, stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Pixels", "Samples", "Avg spp", "Tiles", "Workers", "Render time"})
	table.Append([]string{
		sceneName,
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.1f", stats.AverageSamples()),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Workers),
		stats.Duration.String(),
	})
	table.Render()

	fmt.Fprint(w, buf.String())
}
