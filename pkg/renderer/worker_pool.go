package renderer

import (
	"context"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Options contains configuration for parallel rendering
type Options struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)

	// TileDone, when set, receives each finished tile and its pixels. It is
	// called from the worker goroutines.
	TileDone func(tile Tile, img *image.RGBA)
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Render traces the whole image on a pool of workers, one tile per task.
// Each tile writes a disjoint region of the canvas, so no locking is
// needed; the call returns once every tile is done. Cancelling ctx stops
// tiles that have not started yet.
func Render(ctx context.Context, w *world.World, camera *Camera, opts Options, logger core.Logger) (*Canvas, RenderStats, error) {
	start := time.Now()

	numWorkers := opts.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	tileSize := opts.TileSize
	if tileSize <= 0 {
		tileSize = DefaultOptions().TileSize
	}

	canvas := NewCanvas(camera.HSize, camera.VSize)
	tiles := NewTileGrid(camera.HSize, camera.VSize, tileSize)
	tileRenderer := NewTileRenderer(w, camera)

	logger.Printf("Rendering %dx%d in %d tiles using %d workers...\n",
		camera.HSize, camera.VSize, len(tiles), numWorkers)

	// Each task writes only its own slot
	tileStats := make([]RenderStats, len(tiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for _, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tileStats[tile.ID] = tileRenderer.RenderTileBounds(tile.Bounds, canvas)
			if opts.TileDone != nil {
				opts.TileDone(tile, canvas.SubImage(tile.Bounds))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{Workers: numWorkers}
	for _, ts := range tileStats {
		stats = stats.Add(ts)
	}
	stats.Elapsed = time.Since(start)

	logger.Printf("Render completed in %v (%d pixels, %d clipped)\n",
		stats.Elapsed, stats.TotalPixels, stats.ClippedPixels)
	return canvas, stats, nil
}
