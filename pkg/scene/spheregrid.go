package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// SphereGridSize is the number of spheres along each side of the grid
const SphereGridSize = 20

// gridColor picks an OKLCH color for grid cell (i, j): hue varies along x,
// chroma along z and lightness wobbles gently
func gridColor(i, j, n int) core.Color {
	hue := float64(i) / float64(n-1) * 360
	chroma := 0.05 + float64(j)/float64(n-1)*0.2
	lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)

	r, g, b := colorful.OkLch(lightness, chroma, hue).Clamped().LinearRgb()
	return core.NewColor(r, g, b)
}

// NewSphereGridScene creates a grid of colored shiny spheres in a single
// group. The group is turned into a bounding volume hierarchy, which is
// what makes a scene with hundreds of objects practical.
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       640,
		Height:      360,
		FieldOfView: 40 * math.Pi / 180,
		From:        core.Point(4.5, 6, -9),
		To:          core.Point(4.5, 0.8, 4.5),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("sphere-grid", defaultCameraConfig, cameraOverrides)

	ground := groundPlane()

	// Fit the grid in a 9x9 area centred on x=z=4.5
	targetArea := 9.0
	spacing := targetArea / float64(SphereGridSize-1)
	radius := max(0.02, min(0.35, spacing*0.35))

	grid := geometry.NewGroup()
	for i := range SphereGridSize {
		for j := range SphereGridSize {
			x := float64(i)*spacing - targetArea/2 + 4.5
			z := float64(j)*spacing - targetArea/2 + 4.5

			sphere := geometry.NewSphere()
			sphere.SetTransform(core.Chain(core.Scaling(radius, radius, radius), core.Translation(x, radius, z)))
			m := phong(gridColor(i, j, SphereGridSize), 0.7, 0.9)
			m.Shininess = 300
			m.Reflective = 0.05 + 0.1*float64((i+j)%3)/2
			sphere.SetMaterial(m)
			grid.AddChild(sphere)
		}
	}
	grid.Optimize(geometry.DefaultLeafThreshold, geometry.DefaultMaxDepth)

	s.Add(ground, grid)
	s.AddPointLight(core.Point(20, 25, -20), core.NewColor(0.9, 0.9, 0.85))
	s.AddPointLight(core.Point(-10, 15, -5), core.NewColor(0.3, 0.3, 0.35))
	return s
}
