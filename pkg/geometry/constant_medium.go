package geometry

import (
	"math"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/material"
)

// exitOffset separates the exit search from the entry hit on the boundary
const exitOffset = 0.0001

// ConstantMedium is a volume of uniform density (fog, smoke) bounded by
// another primitive. Rays either pass through untouched or scatter at a
// randomly sampled interior point.
//
// The boundary must be closed and convex: the medium only looks at the first
// entry and exit along each ray.
type ConstantMedium struct {
	Boundary Primitive
	Density  float64
	Phase    *material.Isotropic
	sampler  core.Sampler
}

// NewConstantMedium wraps boundary in a medium with the given density and albedo.
//
// Free-flight distances are drawn from a goroutine-safe sampler so the medium
// can sit in a BVH shared by all workers.
func NewConstantMedium(boundary Primitive, density float64, albedo material.ColorSource) *ConstantMedium {
	return &ConstantMedium{
		Boundary: boundary,
		Density:  density,
		Phase:    material.NewIsotropic(albedo),
		sampler:  core.NewConcurrentSampler(),
	}
}

// WithSampler replaces the free-flight sampler. The sampler must be safe for
// concurrent use if the medium is queried from more than one goroutine.
func (m *ConstantMedium) WithSampler(sampler core.Sampler) *ConstantMedium {
	m.sampler = sampler
	return m
}

// Hit samples a free-flight distance through the medium along the ray
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+exitOffset, math.Inf(1))
	if !ok {
		return nil, false
	}

	t0, t1 := entry.T, exit.T
	if t0 < tMin {
		t0 = tMin
	}
	if t1 > tMax {
		t1 = tMax
	}
	if !(t0 < t1) {
		return nil, false
	}
	if t0 < 0 {
		t0 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInside := (t1 - t0) * rayLength
	hitDistance := -(1 / m.Density) * math.Log(m.sampler.Get1D())
	if !(hitDistance < distanceInside) {
		return nil, false
	}

	t := t0 + hitDistance/rayLength
	return &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   core.NewVec3(1, 0, 0), // arbitrary, isotropic scattering ignores it
		Material: m.Phase,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
