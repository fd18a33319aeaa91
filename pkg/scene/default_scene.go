package scene

import (
	"go.uber.org/zap"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
	"github.com/df07/go-batch-pathtracer/pkg/integrator"
	"github.com/df07/go-batch-pathtracer/pkg/material"
	"github.com/df07/go-batch-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with a ground and three spheres:
// diffuse in the middle, glass on the left and metal on the right
func NewDefaultScene(opts Options, logger *zap.Logger) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:          core.NewVec3(0, 1, 0),    // Standard up direction
		AspectRatio: opts.AspectRatio,
		VFov:        40.0,
	}

	// Create materials
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	primitives := []geometry.Primitive{
		NewGroundSphere(0, lambertianGreen),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, materialGlass),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
	}

	return New("default", cameraConfig, integrator.NewSkyGradient(), primitives, logger)
}
