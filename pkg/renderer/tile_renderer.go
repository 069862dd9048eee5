package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []Tile {
	var tiles []Tile

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := range tilesY {
		for tileX := range tilesX {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{ID: len(tiles), Bounds: image.Rect(x0, y0, x1, y1)})
		}
	}

	return tiles
}

// TileRenderer traces the pixels of individual tiles into a shared canvas
type TileRenderer struct {
	world  *world.World
	camera *Camera
}

// NewTileRenderer creates a tile renderer for a world seen through a camera
func NewTileRenderer(w *world.World, camera *Camera) *TileRenderer {
	return &TileRenderer{world: w, camera: camera}
}

// RenderTileBounds traces the pixels within bounds into canvas. Concurrent
// calls are safe as long as their bounds do not overlap.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, canvas *Canvas) RenderStats {
	stats := RenderStats{Tiles: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color := tr.world.Trace(tr.camera.RayForPixel(x, y))
			canvas.WritePixel(x, y, color)

			stats.TotalPixels++
			if clipped(color) {
				stats.ClippedPixels++
			}
		}
	}

	return stats
}
