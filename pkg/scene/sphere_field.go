package scene

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
	"github.com/df07/go-batch-pathtracer/pkg/integrator"
	"github.com/df07/go-batch-pathtracer/pkg/material"
	"github.com/df07/go-batch-pathtracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	// Clamp to [0, 1] range
	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewSphereFieldScene creates a field of small randomly placed spheres around
// three large ones. Placement and materials depend only on opts.Seed.
func NewSphereFieldScene(opts Options, logger *zap.Logger) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: opts.AspectRatio,
		VFov:        20.0,
	}

	random := rand.New(rand.NewSource(opts.Seed))
	glass := material.NewDielectric(1.5)

	ground := material.NewTexturedLambertian(material.NewCheckerTexture(
		core.NewVec3(0.2, 0.3, 0.1),
		core.NewVec3(0.9, 0.9, 0.9),
		10,
	))
	primitives := []geometry.Primitive{NewGroundSphere(0, ground)}

	const (
		fieldExtent  = 6
		sphereRadius = 0.2
	)

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	clearing := core.NewVec3(4, sphereRadius, 0)
	for a := -fieldExtent; a < fieldExtent; a++ {
		for b := -fieldExtent; b < fieldExtent; b++ {
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				sphereRadius,
				float64(b)+0.9*random.Float64(),
			)
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			// Hue follows the position in the field, chroma is random
			hue := math.Mod(math.Atan2(center.Z, center.X)*180/math.Pi+360, 360)
			chroma := minChroma + random.Float64()*(maxChroma-minChroma)
			color := oklchToRGB(baseLightness+0.1*math.Sin(float64(a+b)*0.5), chroma, hue)

			var mat material.Material
			switch choose := random.Float64(); {
			case choose < 0.7:
				mat = material.NewLambertian(color)
			case choose < 0.9:
				mat = material.NewMetal(color, 0.5*random.Float64())
			default:
				mat = glass
			}

			primitives = append(primitives, geometry.NewSphere(center, sphereRadius, mat))
		}
	}

	primitives = append(primitives,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return New("spheres", cameraConfig, integrator.NewSkyGradient(), primitives, logger)
}
