package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// Builder assembles a scene
type Builder func(opts Options, logger *zap.Logger) (*Scene, error)

// SceneInfo describes a scene that can be rendered
type SceneInfo struct {
	ID          string // Name used on the command line
	DisplayName string // Human readable name
	Description string // Optional description
	Type        string // "builtin" or "file"
	FilePath    string // Path to the scene document (file type only)
}

type registryEntry struct {
	info    SceneInfo
	builder Builder
}

// Registry maps scene names to builders
type Registry struct {
	entries map[string]registryEntry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// DefaultRegistry returns a registry holding every built-in scene
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("default", "Ground with diffuse, glass and metal spheres", NewDefaultScene)
	r.Register("spheres", "Random field of small spheres around three large ones", NewSphereFieldScene)
	r.Register("fog", "Smoke and haze volumes next to clear glass", NewFogScene)
	r.Register("mesh", "Fan-triangulated OBJ mesh, or generated polyhedra without --mesh", NewMeshScene)
	return r
}

// Register adds a built-in scene, replacing any scene with the same id
func (r *Registry) Register(id, description string, builder Builder) {
	r.entries[id] = registryEntry{
		info: SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: description,
			Type:        "builtin",
		},
		builder: builder,
	}
}

// List returns the registered scenes sorted by id
func (r *Registry) List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(r.entries))
	for _, entry := range r.entries {
		scenes = append(scenes, entry.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Build creates the scene called name. Names ending in .yaml or .yml are
// loaded as scene documents and names ending in .obj are rendered with the
// mesh scene.
func (r *Registry) Build(name string, opts Options, logger *zap.Logger) (*Scene, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return LoadFile(name, opts, logger)
	case ".obj":
		opts.MeshPath = name
		return NewMeshScene(opts, logger)
	}

	entry, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q: %w", name, core.ErrInvalidInput)
	}
	return entry.builder(opts, logger)
}

// ListFiles scans dir for scene documents. Documents that cannot be parsed
// are logged and skipped.
func ListFiles(dir string, logger *zap.Logger) ([]SceneInfo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		doc, err := ReadDocument(filePath)
		if err != nil {
			logger.Warn("skipping scene document", zap.String("path", filePath), zap.Error(err))
			continue
		}

		id := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		displayName := doc.Name
		if displayName == "" {
			displayName = titleCase(id)
		}
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: displayName,
			Description: doc.Description,
			Type:        "file",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-spheres" -> "Glass Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
