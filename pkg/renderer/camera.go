package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// CameraConfig describes where a camera sits and what it sees
type CameraConfig struct {
	Width       int        // Image width in pixels
	Height      int        // Image height in pixels
	FieldOfView float64    // Horizontal or vertical angle in radians, whichever side is longer
	From        core.Tuple // Eye position
	To          core.Tuple // Point looked at
	Up          core.Tuple // Approximate up direction
}

// DefaultCameraConfig returns a small camera looking at the origin from -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:       400,
		Height:      200,
		FieldOfView: math.Pi / 3,
		From:        core.Point(0, 1.5, -5),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
	}
}

// MergeCameraConfig returns base with the non-zero fields of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.FieldOfView > 0 {
		result.FieldOfView = override.FieldOfView
	}
	if override.From != (core.Tuple{}) {
		result.From = override.From
	}
	if override.To != (core.Tuple{}) {
		result.To = override.To
	}
	if override.Up != (core.Tuple{}) {
		result.Up = override.Up
	}
	return result
}

// Camera maps pixels on a canvas one unit in front of the eye to rays.
// Its transform orients the world relative to the camera.
type Camera struct {
	HSize       int
	VSize       int
	FieldOfView float64

	transform  core.Transform
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera with an identity transform, looking down -z
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   core.IdentityTransform(),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)
	return c
}

// NewCameraFromConfig creates a camera placed by a view transform
func NewCameraFromConfig(cfg CameraConfig) *Camera {
	c := NewCamera(cfg.Width, cfg.Height, cfg.FieldOfView)
	c.SetTransform(core.ViewTransform(cfg.From, cfg.To, cfg.Up))
	return c
}

// Transform returns the view transform
func (c *Camera) Transform() core.Transform { return c.transform }

// SetTransform sets the view transform
func (c *Camera) SetTransform(m core.Matrix) { c.transform = core.NewTransform(m) }

// PixelSize returns the width of one pixel on the canvas plane
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// RayForPixel returns the world-space ray through the centre of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	inv := c.transform.Inverse()
	pixel := inv.MulTuple(core.Point(worldX, worldY, -1))
	origin := inv.MulTuple(core.Origin)
	return core.NewRay(origin, pixel.Subtract(origin).Normalize())
}

// Render traces every pixel in order on the calling goroutine
func (c *Camera) Render(w *world.World) *Canvas {
	canvas := NewCanvas(c.HSize, c.VSize)
	for y := range c.VSize {
		for x := range c.HSize {
			canvas.WritePixel(x, y, w.Trace(c.RayForPixel(x, y)))
		}
	}
	return canvas
}
