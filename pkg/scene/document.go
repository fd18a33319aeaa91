package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
	"github.com/df07/go-batch-pathtracer/pkg/integrator"
	"github.com/df07/go-batch-pathtracer/pkg/loaders"
	"github.com/df07/go-batch-pathtracer/pkg/material"
	"github.com/df07/go-batch-pathtracer/pkg/renderer"
)

// Document is the YAML description of a scene
type Document struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Camera      CameraDoc              `yaml:"camera"`
	Background  *BackgroundDoc         `yaml:"background"`
	Textures    map[string]TextureDoc  `yaml:"textures"`
	Materials   map[string]MaterialDoc `yaml:"materials"`
	Objects     []ObjectDoc            `yaml:"objects"`
}

// Vec is an [x, y, z] triple
type Vec []float64

// CameraDoc places the camera. Missing fields fall back to a camera at the
// origin looking down -Z with a 40 degree field of view.
type CameraDoc struct {
	Center Vec     `yaml:"center"`
	LookAt Vec     `yaml:"look_at"`
	Up     Vec     `yaml:"up"`
	VFov   float64 `yaml:"vfov"`
}

// BackgroundDoc is either a "sky" gradient or a "solid" color
type BackgroundDoc struct {
	Type    string `yaml:"type"`
	Horizon Vec    `yaml:"horizon"`
	Zenith  Vec    `yaml:"zenith"`
	Color   Vec    `yaml:"color"`
}

// TextureDoc is a "solid", "checker" or "image" texture
type TextureDoc struct {
	Type  string  `yaml:"type"`
	Color Vec     `yaml:"color"`
	Even  Vec     `yaml:"even"`
	Odd   Vec     `yaml:"odd"`
	Scale float64 `yaml:"scale"`
	Path  string  `yaml:"path"`
}

// MaterialDoc is a "lambertian", "metal" or "dielectric" material
type MaterialDoc struct {
	Type            string  `yaml:"type"`
	Albedo          Vec     `yaml:"albedo"`
	Texture         string  `yaml:"texture"`
	Fuzz            float64 `yaml:"fuzz"`
	RefractiveIndex float64 `yaml:"refractive_index"`
}

// ObjectDoc is a "sphere", "triangle", "mesh" or "medium". A medium wraps a
// boundary object and scatters with the given albedo or texture.
type ObjectDoc struct {
	Type     string     `yaml:"type"`
	Material string     `yaml:"material"`
	Center   Vec        `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Vertices []Vec      `yaml:"vertices"`
	Path     string     `yaml:"path"`
	Density  float64    `yaml:"density"`
	Albedo   Vec        `yaml:"albedo"`
	Texture  string     `yaml:"texture"`
	Boundary *ObjectDoc `yaml:"boundary"`
}

// ReadDocument reads and decodes a scene document. Unknown keys are errors.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene document: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument decodes a scene document from YAML
func ParseDocument(data []byte) (*Document, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene document: %w", core.ErrInvalidInput)
		}
		return nil, fmt.Errorf("decoding scene document: %v: %w", err, core.ErrInvalidInput)
	}
	return &doc, nil
}

// LoadFile reads the scene document at path and builds it. Relative file
// references inside the document are resolved against its directory.
func LoadFile(path string, opts Options, logger *zap.Logger) (*Scene, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc.Build(filepath.Dir(path), opts, logger)
}

// Build resolves textures, materials and objects and assembles the scene.
// References to undefined textures or materials are core.ErrInvalidInput.
func (d *Document) Build(baseDir string, opts Options, logger *zap.Logger) (*Scene, error) {
	b := &documentBuilder{
		baseDir:       baseDir,
		logger:        logger,
		textures:      make(map[string]material.ColorSource),
		materials:     make(map[string]material.Material),
		mediumSampler: core.NewLockedSampler(opts.Seed),
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}

	cameraConfig, err := d.Camera.config(opts.AspectRatio)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	background, err := d.Background.background()
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	for _, name := range sortedKeys(d.Textures) {
		texture, err := b.texture(d.Textures[name])
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		b.textures[name] = texture
	}
	for _, name := range sortedKeys(d.Materials) {
		mat, err := b.material(d.Materials[name])
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		b.materials[name] = mat
	}

	var primitives []geometry.Primitive
	for i, object := range d.Objects {
		objectPrimitives, err := b.object(object)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, object.Type, err)
		}
		primitives = append(primitives, objectPrimitives...)
	}

	return New(d.Name, cameraConfig, background, primitives, b.logger)
}

type documentBuilder struct {
	baseDir       string
	logger        *zap.Logger
	textures      map[string]material.ColorSource
	materials     map[string]material.Material
	mediumSampler core.Sampler
}

func (b *documentBuilder) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.baseDir, path)
}

func (b *documentBuilder) texture(doc TextureDoc) (material.ColorSource, error) {
	switch doc.Type {
	case "solid":
		color, err := doc.Color.vec3()
		if err != nil {
			return nil, err
		}
		return material.NewSolidColor(color), nil
	case "checker":
		even, err := doc.Even.vec3()
		if err != nil {
			return nil, fmt.Errorf("even: %w", err)
		}
		odd, err := doc.Odd.vec3()
		if err != nil {
			return nil, fmt.Errorf("odd: %w", err)
		}
		scale := doc.Scale
		if scale == 0 {
			scale = 10
		}
		return material.NewCheckerTexture(even, odd, scale), nil
	case "image":
		if doc.Path == "" {
			return nil, fmt.Errorf("image texture needs a path: %w", core.ErrInvalidInput)
		}
		image, err := loaders.LoadImage(b.resolve(doc.Path))
		if err != nil {
			return nil, err
		}
		b.logger.Debug("loaded texture", zap.String("path", doc.Path), zap.Int("width", image.Width), zap.Int("height", image.Height))
		return material.NewImageTexture(image.Width, image.Height, image.Pixels), nil
	default:
		return nil, fmt.Errorf("unknown texture type %q: %w", doc.Type, core.ErrInvalidInput)
	}
}

// albedo picks a named texture if given, otherwise a solid color
func (b *documentBuilder) albedo(textureName string, color Vec) (material.ColorSource, error) {
	if textureName != "" {
		texture, ok := b.textures[textureName]
		if !ok {
			return nil, fmt.Errorf("undefined texture %q: %w", textureName, core.ErrInvalidInput)
		}
		return texture, nil
	}
	albedo, err := color.vec3()
	if err != nil {
		return nil, fmt.Errorf("albedo: %w", err)
	}
	return material.NewSolidColor(albedo), nil
}

func (b *documentBuilder) material(doc MaterialDoc) (material.Material, error) {
	switch doc.Type {
	case "lambertian":
		albedo, err := b.albedo(doc.Texture, doc.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedLambertian(albedo), nil
	case "metal":
		albedo, err := doc.Albedo.vec3()
		if err != nil {
			return nil, fmt.Errorf("albedo: %w", err)
		}
		return material.NewMetal(albedo, doc.Fuzz), nil
	case "dielectric":
		if !(doc.RefractiveIndex > 0) {
			return nil, fmt.Errorf("refractive index %v must be positive: %w", doc.RefractiveIndex, core.ErrInvalidInput)
		}
		return material.NewDielectric(doc.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q: %w", doc.Type, core.ErrInvalidInput)
	}
}

func (b *documentBuilder) lookupMaterial(name string) (material.Material, error) {
	mat, ok := b.materials[name]
	if !ok {
		return nil, fmt.Errorf("undefined material %q: %w", name, core.ErrInvalidInput)
	}
	return mat, nil
}

func (b *documentBuilder) object(doc ObjectDoc) ([]geometry.Primitive, error) {
	switch doc.Type {
	case "sphere":
		sphere, err := b.sphere(doc, true)
		if err != nil {
			return nil, err
		}
		return []geometry.Primitive{sphere}, nil
	case "triangle":
		mat, err := b.lookupMaterial(doc.Material)
		if err != nil {
			return nil, err
		}
		if len(doc.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d: %w", len(doc.Vertices), core.ErrInvalidInput)
		}
		var v [3]core.Vec3
		for i := range v {
			if v[i], err = doc.Vertices[i].vec3(); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
		}
		return []geometry.Primitive{geometry.NewTriangle(v[0], v[1], v[2], mat)}, nil
	case "mesh":
		mat, err := b.lookupMaterial(doc.Material)
		if err != nil {
			return nil, err
		}
		data, err := loaders.LoadOBJ(b.resolve(doc.Path))
		if err != nil {
			return nil, err
		}
		b.logger.Debug("loaded mesh", zap.String("path", doc.Path), zap.Int("faces", len(data.Faces)))
		return loaders.TriangulateOBJ(data, mat)
	case "medium":
		return b.medium(doc)
	default:
		return nil, fmt.Errorf("unknown object type %q: %w", doc.Type, core.ErrInvalidInput)
	}
}

func (b *documentBuilder) sphere(doc ObjectDoc, needMaterial bool) (*geometry.Sphere, error) {
	center, err := doc.Center.vec3()
	if err != nil {
		return nil, fmt.Errorf("center: %w", err)
	}
	if !(doc.Radius > 0) {
		return nil, fmt.Errorf("radius %v must be positive: %w", doc.Radius, core.ErrInvalidInput)
	}

	var mat material.Material
	if needMaterial {
		if mat, err = b.lookupMaterial(doc.Material); err != nil {
			return nil, err
		}
	}
	return geometry.NewSphere(center, doc.Radius, mat), nil
}

func (b *documentBuilder) medium(doc ObjectDoc) ([]geometry.Primitive, error) {
	if doc.Boundary == nil || doc.Boundary.Type != "sphere" {
		return nil, fmt.Errorf("medium needs a sphere boundary: %w", core.ErrInvalidInput)
	}
	if !(doc.Density > 0) {
		return nil, fmt.Errorf("density %v must be positive: %w", doc.Density, core.ErrInvalidInput)
	}

	boundary, err := b.sphere(*doc.Boundary, false)
	if err != nil {
		return nil, fmt.Errorf("boundary: %w", err)
	}
	albedo, err := b.albedo(doc.Texture, doc.Albedo)
	if err != nil {
		return nil, err
	}

	medium := geometry.NewConstantMedium(boundary, doc.Density, albedo).WithSampler(b.mediumSampler)
	return []geometry.Primitive{medium}, nil
}

func (c CameraDoc) config(aspectRatio float64) (renderer.CameraConfig, error) {
	config := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspectRatio,
	}

	var err error
	if c.Center != nil {
		if config.Center, err = c.Center.vec3(); err != nil {
			return config, fmt.Errorf("center: %w", err)
		}
	}
	if c.LookAt != nil {
		if config.LookAt, err = c.LookAt.vec3(); err != nil {
			return config, fmt.Errorf("look_at: %w", err)
		}
	}
	if c.Up != nil {
		if config.Up, err = c.Up.vec3(); err != nil {
			return config, fmt.Errorf("up: %w", err)
		}
	}
	if c.VFov != 0 {
		config.VFov = c.VFov
	}
	if !(config.VFov > 0 && config.VFov < 180) {
		return config, fmt.Errorf("vfov %v out of range: %w", config.VFov, core.ErrInvalidInput)
	}
	if config.Center.Equals(config.LookAt) {
		return config, fmt.Errorf("camera looks at its own center: %w", core.ErrInvalidInput)
	}
	return config, nil
}

func (d *BackgroundDoc) background() (integrator.Background, error) {
	if d == nil {
		return integrator.NewSkyGradient(), nil
	}

	switch d.Type {
	case "", "sky":
		sky := integrator.NewSkyGradient()
		var err error
		if d.Horizon != nil {
			if sky.Horizon, err = d.Horizon.vec3(); err != nil {
				return nil, fmt.Errorf("horizon: %w", err)
			}
		}
		if d.Zenith != nil {
			if sky.Zenith, err = d.Zenith.vec3(); err != nil {
				return nil, fmt.Errorf("zenith: %w", err)
			}
		}
		return sky, nil
	case "solid":
		color, err := d.Color.vec3()
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		return integrator.SolidBackground{Color: color}, nil
	default:
		return nil, fmt.Errorf("unknown background type %q: %w", d.Type, core.ErrInvalidInput)
	}
}

func (v Vec) vec3() (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("expected [x, y, z], got %v: %w", []float64(v), core.ErrInvalidInput)
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
