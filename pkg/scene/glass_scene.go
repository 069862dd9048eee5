package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewGlassScene creates a nearly clear glass sphere and a noisy mirror ball
// over a reflective checkered floor, in front of a checkered back wall
func NewGlassScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       500,
		Height:      500,
		FieldOfView: math.Pi / 4,
		From:        core.Point(2, 0.5, -4),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("glass", defaultCameraConfig, cameraOverrides)

	backWall := geometry.NewPlane()
	backWall.SetTransform(core.Chain(core.Scaling(0.25, 0.25, 0.25), core.RotationX(math.Pi/2), core.Translation(0, 0, 10)))
	backWall.SetMaterial(patterned(checkers(core.White, core.NewColor(0.65, 0.65, 0.65))))

	floor := geometry.NewPlane()
	floor.SetTransform(core.Translation(0, -3, 0))
	floorMaterial := patterned(checkers(core.NewColor(0.7, 0.3, 0.2), core.NewColor(0.4, 0.8, 0.2)))
	floorMaterial.Reflective = 0.1
	floor.SetMaterial(floorMaterial)

	glass := geometry.NewSphere()
	gm := phong(core.NewColor(0, 0.02, 0), 0.8, 0.75)
	gm.Shininess = 300
	gm.Reflective = 0.9
	gm.Transparency = 0.99
	gm.RefractiveIndex = 1.5
	glass.SetMaterial(gm)

	noise := material.NewNoise(material.NewSolid(core.White), material.NewSolid(core.Black), 1)
	noise.SetTransform(core.Chain(core.Scaling(0.2, 1, 0.2), core.RotationZ(math.Pi/8)))
	mirror := geometry.NewSphere()
	mirror.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(-1, -1, -1)))
	mm := patterned(noise)
	mm.Diffuse = 0.1
	mm.Specular = 0.9
	mm.Shininess = 500
	mm.Reflective = 0.99
	mirror.SetMaterial(mm)

	s.Add(floor, backWall, glass, mirror)
	s.AddPointLight(core.Point(10, 10, 0), core.White)
	return s
}

// NewFresnelScene looks across a sheet of water at a checkered bottom and
// back wall. Near the camera the water is clear; towards the horizon it
// reflects more.
func NewFresnelScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       500,
		Height:      200,
		FieldOfView: math.Pi / 2,
		From:        core.Point(0, 0, -4),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("fresnel", defaultCameraConfig, cameraOverrides)

	backWall := geometry.NewPlane()
	backWall.SetTransform(core.Chain(core.Scaling(0.25, 0.25, 0.25), core.RotationX(math.Pi/2), core.Translation(0, 0, 20)))
	backWall.SetMaterial(patterned(checkers(core.White, core.NewColor(0.65, 0.65, 0.65))))

	bottom := geometry.NewPlane()
	bottom.SetTransform(core.Translation(0, -3, 0))
	bottom.SetMaterial(patterned(checkers(core.NewColor(0.7, 0.3, 0.2), core.NewColor(0.4, 0.8, 0.2))))

	water := geometry.NewPlane()
	water.SetTransform(core.Translation(0, -1, 0))
	wm := material.DefaultMaterial()
	wm.Color = core.Black
	wm.Transparency = 1
	wm.Reflective = 0.2
	wm.RefractiveIndex = 1.01
	water.SetMaterial(wm)

	s.Add(backWall, bottom, water)
	s.AddPointLight(core.Point(10, 10, 0), core.White)
	return s
}
