package scene

import (
	"go.uber.org/zap"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
	"github.com/df07/go-batch-pathtracer/pkg/integrator"
	"github.com/df07/go-batch-pathtracer/pkg/material"
	"github.com/df07/go-batch-pathtracer/pkg/renderer"
)

// NewFogScene creates a scene with participating media: a free-standing
// smoke ball, a glass sphere filled with blue haze, and a clear glass sphere
func NewFogScene(opts Options, logger *zap.Logger) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 1.2, 4),
		LookAt:      core.NewVec3(0, 0.6, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: opts.AspectRatio,
		VFov:        40.0,
	}

	ground := material.NewTexturedLambertian(material.NewCheckerTexture(
		core.NewVec3(0.3, 0.3, 0.3),
		core.NewVec3(0.8, 0.8, 0.8),
		4,
	))
	glass := material.NewDielectric(1.5)

	// Both media share one seeded stream
	mediumSampler := core.NewLockedSampler(opts.Seed)

	smokeBoundary := geometry.NewSphere(core.NewVec3(-1.3, 0.7, 0), 0.7, nil)
	smoke := geometry.NewConstantMedium(smokeBoundary, 1.5, material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9))).
		WithSampler(mediumSampler)

	// The haze sits just inside the glass so the glass surface is hit first
	hazeCenter := core.NewVec3(0, 0.6, -0.3)
	hazeGlass := geometry.NewSphere(hazeCenter, 0.6, glass)
	haze := geometry.NewConstantMedium(
		geometry.NewSphere(hazeCenter, 0.59, nil),
		2.0,
		material.NewSolidColor(core.NewVec3(0.2, 0.4, 0.9)),
	).WithSampler(mediumSampler)

	primitives := []geometry.Primitive{
		NewGroundSphere(0, ground),
		smoke,
		hazeGlass,
		haze,
		geometry.NewSphere(core.NewVec3(1.3, 0.5, 0.2), 0.5, glass),
	}

	return New("fog", cameraConfig, integrator.NewSkyGradient(), primitives, logger)
}
