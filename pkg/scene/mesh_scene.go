package scene

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
	"github.com/df07/go-batch-pathtracer/pkg/integrator"
	"github.com/df07/go-batch-pathtracer/pkg/loaders"
	"github.com/df07/go-batch-pathtracer/pkg/material"
	"github.com/df07/go-batch-pathtracer/pkg/renderer"
)

// NewMeshScene renders the OBJ file at opts.MeshPath in grey, or a set of
// generated polyhedra when no path is given. Every polygon goes through fan
// triangulation.
func NewMeshScene(opts Options, logger *zap.Logger) (*Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MeshPath == "" {
		return newGeneratedMeshScene(opts, logger)
	}

	data, err := loaders.LoadOBJ(opts.MeshPath)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded mesh",
		zap.String("path", opts.MeshPath),
		zap.Int("vertices", len(data.Vertices)),
		zap.Int("faces", len(data.Faces)),
	)

	grey := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	primitives, err := loaders.TriangulateOBJ(data, grey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.MeshPath, err)
	}

	lookFrom := core.NewVec3(-2.26788425, 0.320256859, 1.83503199).Multiply(3)
	cameraConfig := renderer.CameraConfig{
		Center:      lookFrom,
		LookAt:      core.NewVec3(-1.33643341, 0.320256859, 1.47116470),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: opts.AspectRatio,
		VFov:        20.0,
	}

	return New("mesh", cameraConfig, integrator.NewSkyGradient(), primitives, logger)
}

func newGeneratedMeshScene(opts Options, logger *zap.Logger) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 2, 6), // Position camera to see the meshes
		LookAt:      core.NewVec3(0, 1, 0), // Look at the center of the scene
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: opts.AspectRatio,
		VFov:        45.0,
	}

	redMetal := material.NewMetal(core.NewVec3(0.8, 0.2, 0.2), 0.1)
	blueLambertian := material.NewLambertian(core.NewVec3(0.2, 0.3, 0.8))
	goldMetal := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.05)

	primitives := []geometry.Primitive{
		NewGroundSphere(0, material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))),
	}

	meshes := []struct {
		data *loaders.OBJData
		mat  material.Material
	}{
		{createBoxMesh(core.NewVec3(-2, 0.5, 0), core.NewVec3(1, 1, 1), math.Pi/6), redMetal},
		{createPyramidMesh(core.NewVec3(0, 1, 0), 1.5, 2.0, math.Pi/4), blueLambertian},
		{createIcosahedronMesh(core.NewVec3(2, 0.8, 0), 0.8, math.Pi/3), goldMetal},
	}
	for _, mesh := range meshes {
		triangles, err := loaders.TriangulateOBJ(mesh.data, mesh.mat)
		if err != nil {
			return nil, err
		}
		primitives = append(primitives, triangles...)
	}

	return New("mesh", cameraConfig, integrator.NewSkyGradient(), primitives, logger)
}

// rotateY rotates p by angle radians around a vertical axis through center
func rotateY(p, center core.Vec3, angle float64) core.Vec3 {
	d := p.Subtract(center)
	sin, cos := math.Sin(angle), math.Cos(angle)
	return center.Add(core.NewVec3(cos*d.X+sin*d.Z, d.Y, -sin*d.X+cos*d.Z))
}

// newMeshData builds OBJ data from vertices rotated around center and faces
// given as counter-clockwise polygons seen from outside
func newMeshData(center core.Vec3, angle float64, vertices []core.Vec3, faces [][]int) *loaders.OBJData {
	data := &loaders.OBJData{Vertices: make([]core.Vec3, len(vertices))}
	for i, v := range vertices {
		data.Vertices[i] = rotateY(v, center, angle)
	}
	for _, face := range faces {
		data.Faces = append(data.Faces, loaders.OBJFace{Indices: face})
	}
	return data
}

// createBoxMesh creates a box of six quads
func createBoxMesh(center, size core.Vec3, angle float64) *loaders.OBJData {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-h.X, -h.Y, -h.Z)), // 0: left-bottom-back
		center.Add(core.NewVec3(+h.X, -h.Y, -h.Z)), // 1: right-bottom-back
		center.Add(core.NewVec3(+h.X, +h.Y, -h.Z)), // 2: right-top-back
		center.Add(core.NewVec3(-h.X, +h.Y, -h.Z)), // 3: left-top-back
		center.Add(core.NewVec3(-h.X, -h.Y, +h.Z)), // 4: left-bottom-front
		center.Add(core.NewVec3(+h.X, -h.Y, +h.Z)), // 5: right-bottom-front
		center.Add(core.NewVec3(+h.X, +h.Y, +h.Z)), // 6: right-top-front
		center.Add(core.NewVec3(-h.X, +h.Y, +h.Z)), // 7: left-top-front
	}

	faces := [][]int{
		{0, 3, 2, 1}, // back (Z-)
		{4, 5, 6, 7}, // front (Z+)
		{0, 4, 7, 3}, // left (X-)
		{1, 2, 6, 5}, // right (X+)
		{0, 1, 5, 4}, // bottom (Y-)
		{3, 7, 6, 2}, // top (Y+)
	}

	return newMeshData(center, angle, vertices, faces)
}

// createPyramidMesh creates a square pyramid with its base as one quad
func createPyramidMesh(center core.Vec3, baseSize, height, angle float64) *loaders.OBJData {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfBase, -halfHeight, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, -halfHeight, +halfBase)), // 3: left-front
		center.Add(core.NewVec3(0, +halfHeight, 0)),                 // 4: apex
	}

	faces := [][]int{
		{0, 1, 2, 3}, // base
		{1, 0, 4},    // back
		{2, 1, 4},    // right
		{3, 2, 4},    // front
		{0, 3, 4},    // left
	}

	return newMeshData(center, angle, vertices, faces)
}

// createIcosahedronMesh creates a regular icosahedron with the given circumradius
func createIcosahedronMesh(center core.Vec3, radius, angle float64) *loaders.OBJData {
	phi := (1.0 + math.Sqrt(5)) / 2.0
	scale := radius / math.Sqrt(1+phi*phi)

	corners := []core.Vec3{
		core.NewVec3(-1, phi, 0), core.NewVec3(1, phi, 0), core.NewVec3(-1, -phi, 0), core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi), core.NewVec3(0, 1, phi), core.NewVec3(0, -1, -phi), core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1), core.NewVec3(phi, 0, 1), core.NewVec3(-phi, 0, -1), core.NewVec3(-phi, 0, 1),
	}
	vertices := make([]core.Vec3, len(corners))
	for i, c := range corners {
		vertices[i] = center.Add(c.Multiply(scale))
	}

	faces := [][]int{
		// around vertex 0
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		// around vertex 3
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	return newMeshData(center, angle, vertices, faces)
}
