package material

import (
	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false if the
	// incoming ray is absorbed.
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Componentwise color multiplier
}

// HitRecord contains information about a ray-object intersection.
// It only lives for one intersection test and the scatter call that follows.
type HitRecord struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Outward geometric normal at intersection
	UV       core.Vec2 // Surface parameters for texture lookup
	T        float64   // Parameter t along the ray
	Material Material  // Material of the hit object
}
