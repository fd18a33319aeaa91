package core

import (
	"math"
	"testing"
)

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if got := v.Axis(axis); got != expected {
			t.Errorf("Axis(%d): expected %f, got %f", axis, expected, got)
		}
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"unit x", NewVec3(5, 0, 0), NewVec3(1, 0, 0)},
		{"3-4-0", NewVec3(3, 4, 0), NewVec3(0.6, 0.8, 0)},
		{"zero stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_CrossAndDot(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	if got := x.Cross(y); !got.Equals(NewVec3(0, 0, 1)) {
		t.Errorf("Expected x cross y = z, got %v", got)
	}
	if x.Dot(y) != 0 {
		t.Errorf("Expected orthogonal vectors to have zero dot product")
	}
}

func TestVec3_Lerp(t *testing.T) {
	a := NewVec3(1, 1, 1)
	b := NewVec3(0.5, 0.7, 1.0)

	if got := a.Lerp(b, 0); !got.Equals(a) {
		t.Errorf("Lerp at 0: expected %v, got %v", a, got)
	}
	if got := a.Lerp(b, 1); !got.Equals(b) {
		t.Errorf("Lerp at 1: expected %v, got %v", b, got)
	}
	mid := a.Lerp(b, 0.5)
	if math.Abs(mid.X-0.75) > 1e-12 || math.Abs(mid.Y-0.85) > 1e-12 || math.Abs(mid.Z-1.0) > 1e-12 {
		t.Errorf("Lerp at 0.5: got %v", mid)
	}
}

func TestVec3_ClampAndGamma(t *testing.T) {
	clamped := NewVec3(-0.5, 0.25, 3).Clamp(0, 1)
	if !clamped.Equals(NewVec3(0, 0.25, 1)) {
		t.Errorf("Clamp: expected (0, 0.25, 1), got %v", clamped)
	}

	// Gamma 2 is a square root
	if got := clamped.GammaCorrect(2); !got.Equals(NewVec3(0, 0.5, 1)) {
		t.Errorf("GammaCorrect(2): expected (0, 0.5, 1), got %v", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	if got := ray.At(1.5); !got.Equals(NewVec3(1, 2, 0)) {
		t.Errorf("Expected (1,2,0), got %v", got)
	}
}
