// Package cmd implements the pathtracer command line.
package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-batch-pathtracer/pkg/config"
)

// NewApp builds the command line application.
func NewApp() *cli.App {
	defaults := config.Default()

	// The default version flag also claims -v
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render scenes using Monte Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a PNG file",
			Description: `
Build a built-in scene, a YAML scene document or a Wavefront OBJ mesh, trace
it with the path tracer and write the averaged frame as PNG.

Settings come from the defaults, then the --config file, then the flags.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene name, or a .yaml/.obj file",
				},
				cli.StringFlag{
					Name:  "config, c",
					Usage: "YAML render config file",
				},
				cli.StringFlag{
					Name:  "mesh",
					Usage: "OBJ file rendered by the mesh scene",
				},
				cli.IntFlag{
					Name:  "width",
					Value: defaults.Render.Width,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: defaults.Render.Height,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: defaults.Render.SamplesPerPixel,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: defaults.Render.MaxDepth,
					Usage: "maximum number of bounces per path",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: defaults.Render.TileSize,
					Usage: "edge length of a render tile",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: defaults.Render.Workers,
					Usage: "number of render workers, 0 for one per CPU",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: defaults.Render.Seed,
					Usage: "seed for sampling and random scene layout; scenes with fog repeat exactly only with --workers 1",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: defaults.Output.Path,
					Usage: "image filename for the rendered frame",
				},
			},
			Action: Render,
		},
		{
			Name:  "scenes",
			Usage: "list available scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Usage: "also list YAML scene documents in this directory",
				},
			},
			Action: ListScenes,
		},
	}

	return app
}
