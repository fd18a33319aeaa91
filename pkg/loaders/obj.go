package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// OBJFace is one polygon of a Wavefront OBJ file
type OBJFace struct {
	Group   string // Name of the enclosing "o" or "g" statement, empty if none
	Indices []int  // Zero-based indices into OBJData.Vertices
}

// OBJData contains the geometry loaded from an OBJ file
type OBJData struct {
	Vertices []core.Vec3
	Faces    []OBJFace
}

// Polygon returns the vertex positions of face i
func (d *OBJData) Polygon(i int) []core.Vec3 {
	face := d.Faces[i]
	vertices := make([]core.Vec3, len(face.Indices))
	for j, index := range face.Indices {
		vertices[j] = d.Vertices[index]
	}
	return vertices
}

// LoadOBJ loads vertex positions and faces from an OBJ file
func LoadOBJ(filename string) (*OBJData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParseOBJ reads "v" and "f" statements. Texture coordinates, normals,
// materials and every other statement are ignored. Face indices may be
// written as v, v/vt, v//vn or v/vt/vn and may be negative, counting back
// from the most recent vertex.
func ParseOBJ(r io.Reader) (*OBJData, error) {
	data := &OBJData{}
	group := ""

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			vertex, err := parseOBJVertex(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			data.Vertices = append(data.Vertices, vertex)
		case "f":
			indices, err := parseOBJFace(parts[1:], len(data.Vertices))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			data.Faces = append(data.Faces, OBJFace{Group: group, Indices: indices})
		case "o", "g":
			group = strings.Join(parts[1:], " ")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	return data, nil
}

func parseOBJVertex(fields []string) (core.Vec3, error) {
	// An optional fourth w component is ignored
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d: %w", len(fields), core.ErrInvalidInput)
	}

	var coords [3]float64
	for i := range coords {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid vertex coordinate %q: %w", fields[i], core.ErrInvalidInput)
		}
		coords[i] = value
	}

	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

func parseOBJFace(fields []string, vertexCount int) ([]int, error) {
	indices := make([]int, len(fields))
	for i, field := range fields {
		// Only the position index matters
		position, _, _ := strings.Cut(field, "/")
		index, err := strconv.Atoi(position)
		if err != nil {
			return nil, fmt.Errorf("invalid face index %q: %w", field, core.ErrInvalidInput)
		}

		switch {
		case index > 0:
			index--
		case index < 0:
			index += vertexCount
		default:
			return nil, fmt.Errorf("face index 0 is not valid: %w", core.ErrInvalidInput)
		}
		if index < 0 || index >= vertexCount {
			return nil, fmt.Errorf("face index %s out of range for %d vertices: %w", position, vertexCount, core.ErrInvalidInput)
		}

		indices[i] = index
	}
	return indices, nil
}
