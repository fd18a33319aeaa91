package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// panicSampler fails the test if any random number is drawn
type panicSampler struct{ t *testing.T }

func (p panicSampler) Get1D() float64 { p.t.Fatal("unexpected random draw"); return 0 }
func (p panicSampler) Get2D() core.Vec2 {
	p.t.Fatal("unexpected random draw")
	return core.Vec2{}
}
func (p panicSampler) Get3D() core.Vec3 {
	p.t.Fatal("unexpected random draw")
	return core.Vec3{}
}

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_NormalIncidenceMirror(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)

	rayIn := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -2))
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}

	scatter, didScatter := metal.Scatter(rayIn, hit, panicSampler{t})
	if !didScatter {
		t.Fatal("Metal should scatter a normal-incidence ray")
	}
	if !scatter.Scattered.Direction.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected mirrored direction (0,0,1), got %v", scatter.Scattered.Direction)
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_ObliqueMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 0.0)

	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}

	scatter, didScatter := metal.Scatter(rayIn, hit, panicSampler{t})
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestMetal_FuzzCanAbsorb(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Grazing ray: fuzz often pushes the reflection below the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}

	absorbed, scattered := 0, 0
	for i := 0; i < 1000; i++ {
		result, ok := metal.Scatter(rayIn, hit, sampler)
		if ok {
			scattered++
			if result.Scattered.Direction.Dot(hit.Normal) <= 0 {
				t.Fatalf("Scattered direction %v points into the surface", result.Scattered.Direction)
			}
		} else {
			absorbed++
		}
	}

	if absorbed == 0 || scattered == 0 {
		t.Errorf("Expected a mix of absorbed and scattered rays, got absorbed=%d scattered=%d", absorbed, scattered)
	}
}
