package renderer

import (
	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
	"github.com/df07/go-batch-pathtracer/pkg/integrator"
)

// TileRenderer renders individual tiles using an integrator
type TileRenderer struct {
	camera          RayGenerator
	world           geometry.Primitive
	integrator      integrator.Integrator
	width           int
	height          int
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer for an image of the given size
func NewTileRenderer(camera RayGenerator, world geometry.Primitive, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		camera:          camera,
		world:           world,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTile takes every sample of every pixel in tile, writing into the
// tile's region of pixelStats. Tiles never overlap, so concurrent calls on
// distinct tiles are safe. It returns the number of samples taken.
func (tr *TileRenderer) RenderTile(tile *Tile, pixelStats [][]PixelStats) int {
	sampler := core.NewRandomSampler(tile.Random)
	samples := 0

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		// Image rows grow downwards, the image plane's v grows upwards
		row := tr.height - 1 - j
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			for s := 0; s < tr.samplesPerPixel; s++ {
				u := (float64(i) + sampler.Get1D()) / float64(tr.width)
				v := (float64(row) + sampler.Get1D()) / float64(tr.height)

				ray := tr.camera.GetRay(u, v)
				ps.AddSample(tr.integrator.Radiance(ray, tr.world, sampler))
				samples++
			}
		}
	}

	return samples
}
