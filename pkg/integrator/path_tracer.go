package integrator

import (
	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
)

const (
	// DefaultMaxDepth is the number of scattering events after which a path is black
	DefaultMaxDepth = 50
	// DefaultTMin keeps secondary rays from re-hitting the surface they left
	DefaultTMin = 0.001
	// DefaultTMax is the farthest distance a ray looks for geometry
	DefaultTMax = 50.0
)

// PathTracer implements unidirectional path tracing with a fixed depth cap.
// There is no light sampling and no Russian roulette: a path ends when it
// escapes to the background, is absorbed, or reaches MaxDepth.
type PathTracer struct {
	MaxDepth   int
	TMin       float64
	TMax       float64
	Background Background
}

// NewPathTracer creates a path tracer with the default depth cap, ray interval and sky
func NewPathTracer() *PathTracer {
	return &PathTracer{
		MaxDepth:   DefaultMaxDepth,
		TMin:       DefaultTMin,
		TMax:       DefaultTMax,
		Background: NewSkyGradient(),
	}
}

// Radiance follows a single path from ray through world. Each scattering
// event multiplies the path throughput by the material's attenuation; the
// result is the throughput times the background radiance if the path escapes,
// or black otherwise.
func (pt *PathTracer) Radiance(ray core.Ray, world geometry.Primitive, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; ; depth++ {
		hit, isHit := world.Hit(ray, pt.TMin, pt.TMax)
		if !isHit {
			return throughput.MultiplyVec(pt.background(ray))
		}

		if hit.Material == nil {
			return core.Vec3{}
		}

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter || depth >= pt.MaxDepth {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}
}

func (pt *PathTracer) background(ray core.Ray) core.Vec3 {
	if pt.Background == nil {
		return core.Vec3{}
	}
	return pt.Background.Evaluate(ray)
}
