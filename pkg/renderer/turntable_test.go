package renderer

import (
	"context"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

func TestTurntable_Angles(t *testing.T) {
	cfg := DefaultTurntableConfig()
	angles := NewTurntable(DefaultCameraConfig(), cfg).Angles()

	if len(angles) != cfg.Frames {
		t.Fatalf("Expected %d angles, got %d", cfg.Frames, len(angles))
	}
	if angles[0] != 0 {
		t.Errorf("Expected the first frame at 0, got %f", angles[0])
	}

	target := 2 * math.Pi * cfg.Revolutions
	for i := 1; i < len(angles); i++ {
		if angles[i] < angles[i-1] {
			t.Errorf("Angle decreased at frame %d: %f < %f", i, angles[i], angles[i-1])
		}
		if angles[i] > target+1e-9 {
			t.Errorf("Critically damped spring overshot at frame %d: %f", i, angles[i])
		}
	}
	if last := angles[len(angles)-1]; last < 0.9*target {
		t.Errorf("Expected the turn to be nearly complete, got %f of %f", last, target)
	}
}

func TestTurntable_Cameras(t *testing.T) {
	base := CameraConfig{
		Width:       8,
		Height:      8,
		FieldOfView: math.Pi / 2,
		From:        core.Point(0, 0, -5),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	}
	cameras := NewTurntable(base, DefaultTurntableConfig()).Cameras()

	for i, c := range cameras {
		// The eye keeps its distance from the look-at point
		eye := c.Transform().Inverse().MulTuple(core.Origin)
		if d := eye.Subtract(base.To).Magnitude(); !core.ApproxEqual(d, 5) {
			t.Errorf("Frame %d: expected distance 5, got %f", i, d)
		}
	}
	if first := cameras[0].RayForPixel(4, 4); !first.Origin.Equal(base.From) {
		t.Errorf("Expected the first frame at %v, got %v", base.From, first.Origin)
	}
}

func TestTurntable_Render(t *testing.T) {
	cfg := DefaultTurntableConfig()
	cfg.Frames = 3
	base := MergeCameraConfig(DefaultCameraConfig(), CameraConfig{Width: 8, Height: 6})

	frames, err := NewTurntable(base, cfg).Render(context.Background(), world.Default(), DefaultOptions(), NewDiscardLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	if b := frames[0].Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("Unexpected frame size %v", b)
	}
}
