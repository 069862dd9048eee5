package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewReflectionScene creates a shiny red sphere in a corner of checkered
// planes that reflect each other
func NewReflectionScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       500,
		Height:      500,
		FieldOfView: math.Pi / 4,
		From:        core.Point(2, 2, -4),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("reflection", defaultCameraConfig, cameraOverrides)

	wall := func(transform core.Matrix) *geometry.Plane {
		p := geometry.NewPlane()
		p.SetTransform(transform)
		m := patterned(checkers(core.Black, core.White))
		m.Reflective = 0.1
		p.SetMaterial(m)
		return p
	}

	floor := wall(core.Translation(0, -2, 0))
	sideWall := wall(core.Chain(core.RotationZ(math.Pi/2), core.Translation(-2, 0, 0)))
	rearWall := wall(core.Chain(core.RotationX(math.Pi/2), core.Translation(0, 0, 2)))

	sphere := geometry.NewSphere()
	m := phong(core.NewColor(1, 0, 0), 0.8, 0.75)
	m.Shininess = 300
	m.Reflective = 0.1
	sphere.SetMaterial(m)

	s.Add(floor, sideWall, rearWall, sphere)
	s.AddPointLight(core.Point(10, 10, 0), core.White)
	s.World.MaxRecursion = 1
	return s
}
