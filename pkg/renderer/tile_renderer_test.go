package renderer

import (
	"image"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// defaultView looks at the default world from -z
func defaultView(width, height int) *Camera {
	return NewCameraFromConfig(CameraConfig{
		Width:       width,
		Height:      height,
		FieldOfView: math.Pi / 2,
		From:        core.Point(0, 0, -5),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	})
}

func TestNewTileGrid(t *testing.T) {
	// Test tile grid generation for a 400x225 image with 64x64 tiles
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Tiles must cover the entire image without gaps or overlaps
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}

	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile %d to have ID %d, got %d", i, i, tile.ID)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if x >= width || y >= height {
					t.Errorf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
					continue
				}
				if covered[y][x] {
					t.Errorf("Pixel (%d,%d) is covered by multiple tiles", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	for y := range height {
		for x := range width {
			if !covered[y][x] {
				t.Errorf("Pixel (%d,%d) is not covered by any tile", x, y)
			}
		}
	}
}

// TestTileRendererBoundsClipping tests that rendering respects tile bounds
func TestTileRendererBoundsClipping(t *testing.T) {
	w := world.New()
	w.Background = core.NewColor(0.2, 0.4, 0.6)
	renderer := NewTileRenderer(w, defaultView(5, 5))

	canvas := NewCanvas(5, 5)
	stats := renderer.RenderTileBounds(image.Rect(1, 1, 3, 3), canvas)

	if stats.TotalPixels != 4 || stats.Tiles != 1 {
		t.Errorf("Expected 4 pixels in 1 tile, got %+v", stats)
	}

	for y := range 5 {
		for x := range 5 {
			inBounds := x >= 1 && x < 3 && y >= 1 && y < 3
			written := canvas.PixelAt(x, y).Equal(w.Background)
			if inBounds != written {
				t.Errorf("Pixel (%d,%d): in bounds=%v but written=%v", x, y, inBounds, written)
			}
		}
	}
}

func TestTileRendererClippedPixels(t *testing.T) {
	w := world.Default()
	// A second, very bright light pushes the lit side well past 1
	w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.NewColor(3, 3, 3)))

	canvas := NewCanvas(11, 11)
	renderer := NewTileRenderer(w, defaultView(11, 11))
	stats := renderer.RenderTileBounds(image.Rect(0, 0, 11, 11), canvas)

	if stats.ClippedPixels == 0 {
		t.Error("Expected some clipped pixels")
	}
	if stats.ClippedPixels > stats.TotalPixels {
		t.Errorf("Clipped %d of %d pixels", stats.ClippedPixels, stats.TotalPixels)
	}
}
