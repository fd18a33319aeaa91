package loaders

import (
	"fmt"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
	"github.com/df07/go-batch-pathtracer/pkg/material"
)

// Triangulate splits a convex polygon into a fan of triangles around its
// first vertex. Every triangle's normal follows the polygon's winding.
func Triangulate(vertices []core.Vec3, mat material.Material) ([]geometry.Primitive, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon has %d vertices, need at least 3: %w", len(vertices), core.ErrInvalidInput)
	}

	triangles := make([]geometry.Primitive, 0, len(vertices)-2)
	for i := 1; i+1 < len(vertices); i++ {
		triangles = append(triangles, geometry.NewTriangle(vertices[0], vertices[i], vertices[i+1], mat))
	}
	return triangles, nil
}

// TriangulateOBJ fan-triangulates every face of data with one material
func TriangulateOBJ(data *OBJData, mat material.Material) ([]geometry.Primitive, error) {
	var primitives []geometry.Primitive
	for i := range data.Faces {
		triangles, err := Triangulate(data.Polygon(i), mat)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		primitives = append(primitives, triangles...)
	}
	return primitives, nil
}
