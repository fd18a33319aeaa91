package integrator

import (
	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Radiance estimates the light arriving along ray from the world.
	// The sampler is owned by the caller and is not shared across goroutines.
	Radiance(ray core.Ray, world geometry.Primitive, sampler core.Sampler) core.Vec3
}

// Background gives the radiance carried by rays that leave the scene
type Background interface {
	Evaluate(ray core.Ray) core.Vec3
}

// SkyGradient blends from Horizon at the bottom of the sky to Zenith at the top,
// by the height of the ray's unit direction
type SkyGradient struct {
	Horizon core.Vec3
	Zenith  core.Vec3
}

// NewSkyGradient returns the default white-to-blue sky
func NewSkyGradient() SkyGradient {
	return SkyGradient{
		Horizon: core.NewVec3(1.0, 1.0, 1.0),
		Zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Evaluate returns the sky color in the ray's direction
func (s SkyGradient) Evaluate(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return s.Horizon.Lerp(s.Zenith, t)
}

// SolidBackground returns the same color in every direction
type SolidBackground struct {
	Color core.Vec3
}

// Evaluate returns the constant color
func (s SolidBackground) Evaluate(ray core.Ray) core.Vec3 {
	return s.Color
}
