package material

import (
	"math"

	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// ImageTexture looks up colors in a 2D image by surface UV
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 is the top of the image
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture with nearest-neighbor filtering.
// UVs repeat outside [0,1); v=0 is the bottom row.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}

	u := wrapUnit(uv.X)
	v := 1.0 - wrapUnit(uv.Y)

	x := clampIndex(int(u*float64(t.Width)), t.Width)
	y := clampIndex(int(v*float64(t.Height)), t.Height)
	return t.Pixels[y*t.Width+x]
}

// wrapUnit maps any finite value into [0, 1)
func wrapUnit(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 || math.IsNaN(x) {
		return 0
	}
	return x
}

func clampIndex(i, n int) int {
	return max(0, min(n-1, i))
}
