package geometry

import (
	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/material"
)

// Primitive is anything a ray can be intersected with: spheres, triangles,
// participating media and BVH nodes themselves.
//
// Primitives are immutable once built and may be queried from many goroutines.
type Primitive interface {
	// Hit reports the nearest intersection with t strictly inside (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
