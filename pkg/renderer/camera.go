package renderer

import (
	"math"

	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// RayGenerator maps normalized image-plane coordinates to primary rays.
// u runs left to right and v bottom to top, both in [0,1].
type RayGenerator interface {
	GetRay(u, v float64) core.Ray
}

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center      core.Vec3 // Position of the camera
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up direction, need not be perpendicular to the view direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// Camera is a pinhole camera. It holds no mutable state, so one camera can
// serve every worker.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	forward         core.Vec3
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	// Orthonormal basis: w points backwards, u right, v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	lowerLeftCorner := config.Center.
		Subtract(u.Multiply(halfWidth)).
		Subtract(v.Multiply(halfHeight)).
		Subtract(w)

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth),
		vertical:        v.Multiply(2 * halfHeight),
		forward:         w.Negate(),
	}
}

// GetRay generates a ray through the image plane at (u, v)
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// GetCameraForward returns the unit view direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}
