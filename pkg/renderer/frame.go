package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// Frame is a finished image of linear radiance values. Row 0 is the top of
// the image.
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color of pixel (x, y)
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// ToRGBA converts the frame to 8-bit color, applying gamma 2 and clamping
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(f.At(x, y)))
		}
	}
	return img
}

// vec3ToColor converts a linear color to RGBA with gamma correction and
// clamping. NaN channels are black.
func vec3ToColor(c core.Vec3) color.RGBA {
	c = core.NewVec3(zeroNaN(c.X), zeroNaN(c.Y), zeroNaN(c.Z)).Clamp(0, 1).GammaCorrect(2)
	return color.RGBA{
		R: uint8(255.99 * c.X),
		G: uint8(255.99 * c.Y),
		B: uint8(255.99 * c.Z),
		A: 255,
	}
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
