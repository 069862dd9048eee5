package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewDefaultScene creates three spheres in a corner formed by a floor and
// two walls, each made from a flattened sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       300,
		Height:      150,
		FieldOfView: math.Pi / 3,
		From:        core.Point(0, 1.5, -5),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("default", defaultCameraConfig, cameraOverrides)

	wallMaterial := phong(core.NewColor(1, 0.9, 0.9), 0.9, 0)
	flat := core.Scaling(10, 0.01, 10)

	floor := geometry.NewSphere()
	floor.SetTransform(flat)
	floor.SetMaterial(wallMaterial)

	leftWall := geometry.NewSphere()
	leftWall.SetTransform(core.Chain(flat, core.RotationX(math.Pi/2), core.RotationY(-math.Pi/4), core.Translation(0, 0, 5)))
	leftWall.SetMaterial(wallMaterial)

	rightWall := geometry.NewSphere()
	rightWall.SetTransform(core.Chain(flat, core.RotationX(math.Pi/2), core.RotationY(math.Pi/4), core.Translation(0, 0, 5)))
	rightWall.SetMaterial(wallMaterial)

	middle := geometry.NewSphere()
	middle.SetTransform(core.Translation(-0.5, 1, 0.5))
	middle.SetMaterial(phong(core.NewColor(0.1, 1, 0.5), 0.7, 0.3))

	right := geometry.NewSphere()
	right.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(1.5, 0.5, -0.5)))
	right.SetMaterial(phong(core.NewColor(0.5, 1, 0.1), 0.7, 0.3))

	left := geometry.NewSphere()
	left.SetTransform(core.Chain(core.Scaling(0.33, 0.33, 0.33), core.Translation(-1.5, 0.33, -0.75)))
	left.SetMaterial(phong(core.NewColor(1, 0.8, 0.1), 0.7, 0.3))

	s.Add(floor, leftWall, rightWall, middle, right, left)
	s.AddPointLight(core.Point(-10, 10, -10), core.White)
	return s
}
