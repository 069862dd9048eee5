package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	tests := []struct {
		name     string
		pixels   []color.RGBA
		expected float64
	}{
		// Rec. 709 weights sum to one across red, green and blue
		{"primaries and black", []color.RGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}, {0, 0, 0, 255}}, 0.25},
		{"white", []color.RGBA{{255, 255, 255, 255}}, 1.0},
		{"green only", []color.RGBA{{0, 255, 0, 255}}, 0.7152},
		{"black", []color.RGBA{{0, 0, 0, 255}, {0, 0, 0, 255}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, len(tt.pixels), 1))
			for x, c := range tt.pixels {
				img.SetRGBA(x, 0, c)
			}
			if got := CalculateAverageLuminance(img); !core.ApproxEqual(got, tt.expected) {
				t.Errorf("Expected average luminance %f, got %f", tt.expected, got)
			}
		})
	}

	if got := CalculateAverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))); got != 0 {
		t.Errorf("Expected 0 for an empty image, got %f", got)
	}
}

func TestRenderStats_Add(t *testing.T) {
	a := RenderStats{TotalPixels: 10, ClippedPixels: 1, Tiles: 1, Workers: 4}
	b := RenderStats{TotalPixels: 6, ClippedPixels: 2, Tiles: 1}
	sum := a.Add(b)
	if sum.TotalPixels != 16 || sum.ClippedPixels != 3 || sum.Tiles != 2 || sum.Workers != 4 {
		t.Errorf("Unexpected sum %+v", sum)
	}
}
