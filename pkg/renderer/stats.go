package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int           // Total number of pixels rendered
	ClippedPixels int           // Pixels with a channel outside [0, 1] before clamping
	Tiles         int           // Tiles rendered
	Workers       int           // Parallel workers used
	Elapsed       time.Duration // Wall time for the whole render
}

// Add combines the counters of two stats
func (s RenderStats) Add(other RenderStats) RenderStats {
	s.TotalPixels += other.TotalPixels
	s.ClippedPixels += other.ClippedPixels
	s.Tiles += other.Tiles
	return s
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image,
// with each channel scaled to [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}
	return total / float64(pixels)
}
