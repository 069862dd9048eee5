package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Canvas is a grid of linear RGB colors. Colors are stored unclamped;
// clamping happens on conversion to an image. Workers may write disjoint
// pixels concurrently.
type Canvas struct {
	Width, Height int
	pixels        []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

// PixelAt returns the color at (x, y)
func (c *Canvas) PixelAt(x, y int) core.Color {
	return c.pixels[y*c.Width+x]
}

// WritePixel sets the color at (x, y)
func (c *Canvas) WritePixel(x, y int, color core.Color) {
	c.pixels[y*c.Width+x] = color
}

// Image converts the canvas to an 8-bit image, clamping each channel
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := range c.Height {
		for x := range c.Width {
			img.SetRGBA(x, y, c.PixelAt(x, y).ToRGBA())
		}
	}
	return img
}

// SubImage converts the pixels within bounds to an 8-bit image with the same
// bounds. It only reads those pixels, so it may run while other regions are
// still being written.
func (c *Canvas) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, c.Width, c.Height))
	img := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, c.PixelAt(x, y).ToRGBA())
		}
	}
	return img
}

// clipped reports whether a color has a channel outside [0, 1]
func clipped(color core.Color) bool {
	return color.R > 1 || color.G > 1 || color.B > 1 ||
		color.R < 0 || color.G < 0 || color.B < 0
}
