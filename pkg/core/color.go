package core

import (
	"fmt"
	"image/color"
	"math"
)

// Color is a linear RGB triple. Components are nominally in [0, 1] but may
// exceed 1 before clamping.
type Color struct {
	R, G, B float64
}

// Common colors
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the component-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the component-wise difference of two colors
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply scales the color by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Hadamard returns the component-wise product of two colors
func (c Color) Hadamard(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp returns a color with components clamped to [0, 1]
func (c Color) Clamp() Color {
	return Color{
		R: max(0, min(1, c.R)),
		G: max(0, min(1, c.G)),
		B: max(0, min(1, c.B)),
	}
}

// Equal reports approximate equality of the three components
func (c Color) Equal(other Color) bool {
	return ApproxEqual(c.R, other.R) && ApproxEqual(c.G, other.G) && ApproxEqual(c.B, other.B)
}

// ToRGBA converts the color to an 8-bit RGBA value, clamping first
func (c Color) ToRGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(math.Round(255 * c.R)),
		G: uint8(math.Round(255 * c.G)),
		B: uint8(math.Round(255 * c.B)),
		A: 255,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("Color(%g, %g, %g)", c.R, c.G, c.B)
}
