package cmd

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// quietConfig writes a render config that keeps test output readable
func quietConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: error\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	err := app.Run(append([]string{"pathtracer"}, args...))
	return out.String(), err
}

func TestGlobalFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"version", []string{"--version"}, "pathtracer version 0.1.0"},
		{"verbose scenes", []string{"-v", "scenes"}, "spheres"},
		{"very verbose scenes", []string{"-vv", "scenes"}, "spheres"},
		{"plain scenes", []string{"scenes"}, "spheres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, tt.args...)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.want, out)
			}
		})
	}
}

func TestRenderScenes(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(objPath, []byte("v -1 0 -3\nv 1 0 -3\nv 0 1 -3\nf 1 2 3\n"), 0644); err != nil {
		t.Fatalf("failed to write mesh: %v", err)
	}

	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"spheres scene", "spheres", false},
		{"fog scene", "fog", false},
		{"mesh scene", "mesh", false},

		// Files
		{"direct OBJ path", objPath, false},

		// Invalid scenes
		{"unknown scene", "cornell", true},
		{"missing OBJ path", filepath.Join(dir, "nonexistent.obj"), true},
		{"empty scene name", "", true},
	}

	cfgPath := quietConfig(t, dir)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outPath := filepath.Join(dir, "out", strings.ReplaceAll(tt.name, " ", "_")+".png")
			out, err := runApp(t, "render",
				"--config", cfgPath,
				"--scene", tt.sceneType,
				"--width", "12", "--height", "6",
				"--spp", "2", "--depth", "5", "--workers", "2",
				"--out", outPath,
			)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if _, statErr := os.Stat(outPath); statErr == nil {
					t.Errorf("No image should be written for scene type '%s'", tt.sceneType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}

			file, err := os.Open(outPath)
			if err != nil {
				t.Fatalf("Expected output image: %v", err)
			}
			defer file.Close()
			imgConfig, err := png.DecodeConfig(file)
			if err != nil {
				t.Fatalf("Output is not a PNG: %v", err)
			}
			if imgConfig.Width != 12 || imgConfig.Height != 6 {
				t.Errorf("Expected 12x6 image, got %dx%d", imgConfig.Width, imgConfig.Height)
			}

			if !strings.Contains(out, "144") {
				t.Errorf("Expected stats table to report 144 samples, got:\n%s", out)
			}
		})
	}
}

func TestRenderInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	cfgPath := quietConfig(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{"zero width", []string{"--width", "0"}},
		{"zero samples", []string{"--spp", "0"}},
		{"negative depth", []string{"--depth", "-1"}},
		{"negative workers", []string{"--workers", "-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--config", cfgPath, "--out", filepath.Join(dir, "x.png")}, tt.args...)
			if _, err := runApp(t, args...); !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRenderMissingConfig(t *testing.T) {
	_, err := runApp(t, "render", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Errorf("Expected config load error, got %v", err)
	}
}

func TestListScenes(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "studio.yaml")
	if err := os.WriteFile(docPath, []byte("name: Studio\ndescription: three point studio\n"), 0644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}

	out, err := runApp(t, "scenes", "--dir", dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, want := range []string{"default", "spheres", "fog", "mesh", "builtin", docPath, "three point studio"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected scene listing to contain %q, got:\n%s", want, out)
		}
	}
}
