package main

import (
	"bytes"
	"context"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

func TestCreateScene(t *testing.T) {
	sceneFile := filepath.Join(t.TempDir(), "ball.json")
	if err := os.WriteFile(sceneFile, []byte(`{"objects": [{"type": "sphere"}]}`), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		opts        options
		expectError bool
	}{
		{"default scene", options{scene: "default"}, false},
		{"csg scene", options{scene: "csg"}, false},
		{"sphere grid optimized", options{scene: "sphere-grid", optimize: 4}, false},
		{"scene file", options{scene: sceneFile}, false},
		{"unknown scene", options{scene: "nonexistent"}, true},
		{"missing scene file", options{scene: "scenes/nonexistent.json"}, true},
		{"empty scene name", options{scene: ""}, true},
		{"negative width", options{scene: "default", width: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(&tt.opts)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', but got none", tt.opts.scene)
				}
				if s != nil {
					t.Errorf("Expected nil scene for '%s'", tt.opts.scene)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.opts.scene, err)
			}
			if s.CameraConfig.Width <= 0 || s.CameraConfig.Height <= 0 {
				t.Errorf("Scene camera size should be positive, got %dx%d", s.CameraConfig.Width, s.CameraConfig.Height)
			}
		})
	}
}

func TestCreateScene_Overrides(t *testing.T) {
	s, err := createScene(&options{scene: "default", width: 64, height: 32, fov: 90, depth: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.CameraConfig.Width != 64 || s.CameraConfig.Height != 32 {
		t.Errorf("Expected 64x32, got %dx%d", s.CameraConfig.Width, s.CameraConfig.Height)
	}
	if s.CameraConfig.FieldOfView < 1.5707 || s.CameraConfig.FieldOfView > 1.5709 {
		t.Errorf("Expected a quarter turn field of view, got %f", s.CameraConfig.FieldOfView)
	}
	if s.World.MaxRecursion != 2 {
		t.Errorf("Expected recursion 2, got %d", s.World.MaxRecursion)
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		sceneName string
		expected  string
	}{
		{"default", filepath.Join("output", "default")},
		{"sphere-grid", filepath.Join("output", "sphere-grid")},
		{"scenes/my-room.json", filepath.Join("output", "my-room")},
		{"scenes/subdir/Other.JSON", filepath.Join("output", "Other")},
	}

	for _, tt := range tests {
		t.Run(tt.sceneName, func(t *testing.T) {
			if got := createOutputDir(tt.sceneName); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name        string
		opts        options
		expected    renderer.Format
		expectError bool
	}{
		{"default", options{}, renderer.FormatPNG, false},
		{"from flag", options{format: "BMP"}, renderer.FormatBMP, false},
		{"from path", options{out: "x/render.tif"}, renderer.FormatTIFF, false},
		{"flag wins", options{format: "png", out: "render.bmp"}, renderer.FormatPNG, false},
		{"unknown", options{format: "jpeg"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputFormat(&tt.opts)
			if (err != nil) != tt.expectError {
				t.Fatalf("Unexpected error state: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRunRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "render.png")
	opts := &options{scene: "glass", width: 20, height: 10, block: 8, out: out}

	if err := runRender(context.Background(), opts, renderer.NewDiscardLogger()); err != nil {
		t.Fatalf("runRender failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Invalid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("Expected 20x10, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRunAnimate(t *testing.T) {
	dir := t.TempDir()

	t.Run("gif", func(t *testing.T) {
		out := filepath.Join(dir, "spin.gif")
		opts := &options{scene: "default", width: 12, height: 8, frames: 3, fps: 10, out: out}
		if err := runAnimate(context.Background(), opts, renderer.NewDiscardLogger()); err != nil {
			t.Fatalf("runAnimate failed: %v", err)
		}
		f, err := os.Open(out)
		if err != nil {
			t.Fatalf("Output not written: %v", err)
		}
		defer f.Close()
		anim, err := gif.DecodeAll(f)
		if err != nil {
			t.Fatalf("Invalid GIF: %v", err)
		}
		if len(anim.Image) != 3 {
			t.Errorf("Expected 3 frames, got %d", len(anim.Image))
		}
	})

	t.Run("png frames", func(t *testing.T) {
		out := filepath.Join(dir, "frames")
		opts := &options{scene: "default", width: 12, height: 8, frames: 2, fps: 10, out: out}
		if err := runAnimate(context.Background(), opts, renderer.NewDiscardLogger()); err != nil {
			t.Fatalf("runAnimate failed: %v", err)
		}
		for _, name := range []string{"frame_000.png", "frame_001.png"} {
			if _, err := os.Stat(filepath.Join(out, name)); err != nil {
				t.Errorf("Missing %s: %v", name, err)
			}
		}
	})

	t.Run("no frames", func(t *testing.T) {
		opts := &options{scene: "default", frames: 0, fps: 10}
		if err := runAnimate(context.Background(), opts, renderer.NewDiscardLogger()); err == nil {
			t.Error("Expected an error for zero frames")
		}
	})
}

func TestScenesCommand(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"scenes", "--scenes", t.TempDir()})

	if err := root.Execute(); err != nil {
		t.Fatalf("scenes failed: %v", err)
	}
	output := buf.String()
	for _, want := range []string{"Built-in Scenes:", "default", "sphere-grid", "triangles"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output:\n%s", want, output)
		}
	}
}
