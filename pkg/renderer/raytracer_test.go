package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-batch-pathtracer/pkg/core"
	"github.com/df07/go-batch-pathtracer/pkg/geometry"
	"github.com/df07/go-batch-pathtracer/pkg/integrator"
	"github.com/df07/go-batch-pathtracer/pkg/material"
)

func testOptions() Options {
	return Options{
		Width:           24,
		Height:          16,
		SamplesPerPixel: 4,
		TileSize:        8,
		Workers:         2,
		Seed:            42,
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults", func(o *Options) {}, false},
		{"zero width", func(o *Options) { o.Width = 0 }, true},
		{"negative height", func(o *Options) { o.Height = -1 }, true},
		{"zero samples", func(o *Options) { o.SamplesPerPixel = 0 }, true},
		{"zero tile size", func(o *Options) { o.TileSize = 0 }, true},
		{"negative workers", func(o *Options) { o.Workers = -2 }, true},
		{"zero workers means auto", func(o *Options) { o.Workers = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr && !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestNewRaytracer_RejectsMissingParts(t *testing.T) {
	_, err := NewRaytracer(newTestCamera(), nil, integrator.NewPathTracer(), testOptions(), nil)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil world, got %v", err)
	}
}

func TestRender_ConstantIntegrator(t *testing.T) {
	opts := testOptions()
	integ := &MockIntegrator{returnColor: core.NewVec3(0.25, 0.5, 1)}

	rt, err := NewRaytracer(newTestCamera(), emptyWorld{}, integ, opts, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	frame, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			if c := frame.At(x, y); c != integ.returnColor {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, integ.returnColor, c)
			}
		}
	}

	want := RenderStats{
		TotalPixels:     24 * 16,
		TotalSamples:    24 * 16 * 4,
		SamplesPerPixel: 4,
		Tiles:           6,
		Workers:         2,
	}
	stats.Duration = 0
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("Unexpected stats (-want +got):\n%s", diff)
	}
}

func TestRender_TopRowIsSkyward(t *testing.T) {
	rt, err := NewRaytracer(newTestCamera(), emptyWorld{}, integrator.NewPathTracer(), testOptions(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	frame, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// The sky is whiter towards the horizon, so red drops towards the top
	top := frame.At(frame.Width/2, 0)
	bottom := frame.At(frame.Width/2, frame.Height-1)
	if !(top.X < bottom.X) {
		t.Errorf("Expected top row %v to be bluer than bottom row %v", top, bottom)
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	world, err := geometry.NewBVH([]geometry.Primitive{
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, mat),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, mat),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	render := func(workers int) *Frame {
		opts := testOptions()
		opts.Workers = workers
		rt, err := NewRaytracer(newTestCamera(), world, integrator.NewPathTracer(), opts, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		frame, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		return frame
	}

	want := render(1)
	for _, workers := range []int{2, 5} {
		if diff := cmp.Diff(want, render(workers)); diff != "" {
			t.Errorf("workers=%d: frame differs from single worker render (-want +got):\n%s", workers, diff)
		}
	}
}

func TestRender_Cancelled(t *testing.T) {
	rt, err := NewRaytracer(newTestCamera(), emptyWorld{}, &MockIntegrator{}, testOptions(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frame, _, err := rt.Render(ctx)
	if !errors.Is(err, ErrInterrupted) || !errors.Is(err, context.Canceled) {
		t.Errorf("Expected ErrInterrupted wrapping context.Canceled, got %v", err)
	}
	if frame != nil {
		t.Error("Expected no frame from an interrupted render")
	}
}
