package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSurrounding_ContainsBoth(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	randomBox := func() AABB {
		a := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
		b := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
		return NewAABBFromPoints(a, b)
	}

	for i := 0; i < 200; i++ {
		a, b := randomBox(), randomBox()
		s := Surrounding(a, b)

		if !s.Contains(a) || !s.Contains(b) {
			t.Fatalf("Surrounding(%v, %v) = %v does not contain both", a, b, s)
		}

		want := AABB{
			Min: NewVec3(math.Min(a.Min.X, b.Min.X), math.Min(a.Min.Y, b.Min.Y), math.Min(a.Min.Z, b.Min.Z)),
			Max: NewVec3(math.Max(a.Max.X, b.Max.X), math.Max(a.Max.Y, b.Max.Y), math.Max(a.Max.Z, b.Max.Z)),
		}
		if s != want {
			t.Fatalf("Surrounding is not minimal: got %v, want %v", s, want)
		}
	}
}

func TestAABB_SurfaceArea(t *testing.T) {
	tests := []struct {
		name     string
		box      AABB
		expected float64
	}{
		{"unit cube", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)), 6},
		{"flat square", NewAABB(NewVec3(0, 0, 0), NewVec3(2, 2, 0)), 8},
		{"box 1x2x3", NewAABB(NewVec3(-1, -1, -1), NewVec3(0, 1, 2)), 22},
		{"point", NewAABB(NewVec3(3, 3, 3), NewVec3(3, 3, 3)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.SurfaceArea(); got != tt.expected {
				t.Errorf("Expected surface area %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		size     Vec3
		expected int
	}{
		{"x longest", NewVec3(3, 1, 1), 0},
		{"y longest", NewVec3(1, 3, 1), 1},
		{"z longest", NewVec3(1, 1, 3), 2},
		{"cube picks x", NewVec3(2, 2, 2), 0},
		{"x and y tie", NewVec3(2, 2, 1), 0},
		{"y and z tie", NewVec3(1, 2, 2), 1},
		{"x and z tie", NewVec3(2, 1, 2), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := NewAABB(NewVec3(0, 0, 0), tt.size)
			if got := box.LongestAxis(); got != tt.expected {
				t.Errorf("Expected axis %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMin     float64
		tMax     float64
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0, 100, true},
		{"miss to the side", NewRay(NewVec3(3, 0, 5), NewVec3(0, 0, -1)), 0, 100, false},
		{"box behind ray", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), 0, 100, false},
		{"tMax before box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0, 3, false},
		{"tMin after box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 7, 100, false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 1)), 0, 100, true},
		{"diagonal hit", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), 0, 100, true},
		{"negative direction", NewRay(NewVec3(5, 0.5, 0.5), NewVec3(-1, 0, 0)), 0, 100, true},
		{"parallel inside slab", NewRay(NewVec3(-5, 0.5, 0.5), NewVec3(1, 0, 0)), 0, 100, true},
		{"parallel outside slab", NewRay(NewVec3(-5, 2, 0.5), NewVec3(1, 0, 0)), 0, 100, false},
		{"grazing slab face", NewRay(NewVec3(-5, 1, 0.5), NewVec3(1, 0, 0)), 0, 100, false},
		{"zero direction inside", NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 0)), 0, 100, true},
		{"zero direction outside", NewRay(NewVec3(5, 0, 0), NewVec3(0, 0, 0)), 0, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.expected {
				t.Errorf("Expected hit=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_Hit_FlatBox(t *testing.T) {
	// Axis-aligned triangles produce zero-thickness boxes
	flat := NewAABB(NewVec3(-1, -1, 0), NewVec3(1, 1, 0))

	if !flat.Hit(NewRay(NewVec3(0, 0, 2), NewVec3(0, 0, -1)), 0.001, 100) {
		t.Error("Expected ray to hit flat box head-on")
	}
	if flat.Hit(NewRay(NewVec3(0, 0, 2), NewVec3(1, 0, 0)), 0.001, 100) {
		t.Error("Expected ray parallel to and off the plane of a flat box to miss")
	}
}

func TestAABB_Hit_NaNRay(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	nan := math.NaN()

	// Must not panic, and a NaN interval must not be reported as a hit
	if box.Hit(NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), nan, 100) {
		t.Error("Expected NaN tMin to report no hit")
	}
	if box.Hit(NewRay(NewVec3(nan, 0, 5), NewVec3(0, 0, -1)), 0, 100) {
		t.Error("Expected NaN origin to report no hit")
	}
}
