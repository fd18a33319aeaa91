package scene

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
	"github.com/df07/go-batch-pathtracer/pkg/integrator"
	"github.com/df07/go-batch-pathtracer/pkg/material"
	"github.com/df07/go-batch-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	World        *geometry.BVHNode     // Acceleration structure over Primitives
	Background   integrator.Background // Radiance of rays that escape
	Primitives   []geometry.Primitive  // Objects in the scene
}

// Options are the settings a scene builder may need from the caller
type Options struct {
	AspectRatio float64 // Image width / height, used for the camera
	MeshPath    string  // OBJ file for the mesh scene, empty for a generated mesh
	Seed        int64   // Seed for randomly placed objects
}

// DefaultOptions returns a 16:9 frame
func DefaultOptions() Options {
	return Options{
		AspectRatio: 16.0 / 9.0,
		Seed:        42,
	}
}

// New builds the acceleration structure over primitives and assembles a
// scene. It fails with core.ErrInvalidInput if there is nothing to render.
func New(name string, cameraConfig renderer.CameraConfig, background integrator.Background, primitives []geometry.Primitive, logger *zap.Logger) (*Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	world, err := geometry.NewBVH(primitives)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	stats := world.Stats()
	logger.Debug("BVH built",
		zap.String("scene", name),
		zap.Duration("took", time.Since(start)),
		zap.Int("primitives", stats.Primitives),
		zap.Int("nodes", stats.TotalNodes),
		zap.Int("leaves", stats.LeafNodes),
		zap.Int("depth", stats.MaxDepth),
	)

	return &Scene{
		Name:         name,
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		World:        world,
		Background:   background,
		Primitives:   primitives,
	}, nil
}

// NewGroundSphere creates a huge sphere whose top touches y = height,
// standing in for an infinite ground plane
func NewGroundSphere(height float64, mat material.Material) *geometry.Sphere {
	const radius = 1000.0
	return geometry.NewSphere(core.NewVec3(0, height-radius, 0), radius, mat)
}
