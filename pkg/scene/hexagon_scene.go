package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// hexagonSide is one corner sphere and one edge cylinder. Children get
// their transforms before they join the group.
func hexagonSide(rotation float64) *geometry.Group {
	corner := geometry.NewSphere()
	corner.SetTransform(core.Chain(core.Scaling(0.25, 0.25, 0.25), core.Translation(0, 0, -1)))

	edge := geometry.NewTruncatedCylinder(0, 1, false)
	edge.SetTransform(core.Chain(
		core.Scaling(0.25, 1, 0.25),
		core.RotationZ(-math.Pi/2),
		core.RotationY(-math.Pi/6),
		core.Translation(0, 0, -1),
	))

	side := geometry.NewGroup()
	side.SetTransform(core.RotationY(rotation))
	side.AddChild(corner, edge)
	return side
}

// NewHexagon builds a hexagon out of nested groups: six sides, each a group
// of a sphere and a cylinder rotated about y
func NewHexagon() *geometry.Group {
	hex := geometry.NewGroup()
	for n := range 6 {
		hex.AddChild(hexagonSide(float64(n) * math.Pi / 3))
	}
	return hex
}

// NewHexagonScene shows a hexagon built from nested groups
func NewHexagonScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       500,
		Height:      500,
		FieldOfView: math.Pi / 2,
		From:        core.Point(2, 2, -4),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("hexagon", defaultCameraConfig, cameraOverrides)

	hex := NewHexagon()
	m := phong(core.NewColor(0.9, 0.3, 0.2), 0.8, 0.6)
	m.Reflective = 0.2
	hex.SetMaterial(m)

	s.Add(hex)
	s.AddPointLight(core.Point(5, 5, -2), core.White)
	s.World.MaxRecursion = 1
	return s
}
