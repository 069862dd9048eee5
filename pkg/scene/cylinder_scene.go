package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Shared materials for the cylinder and cone scenes
func matte(c core.Color) *material.Material { return phong(c, 0.9, 0.1) }

func gold() *material.Material {
	m := phong(core.NewColor(0.8, 0.6, 0.2), 0.6, 0.9)
	m.Shininess = 300
	m.Reflective = 0.3
	return m
}

func groundPlane() *geometry.Plane {
	ground := geometry.NewPlane()
	ground.SetMaterial(matte(core.NewColor(0.5, 0.5, 0.5)))
	return ground
}

// newCylinder creates a cylinder of the given radius and height standing on
// the origin, then moves it into place
func newCylinder(radius, height float64, closed bool, place ...core.Matrix) *geometry.Cylinder {
	c := geometry.NewTruncatedCylinder(0, 1, closed)
	c.SetTransform(core.Chain(append([]core.Matrix{core.Scaling(radius, height, radius)}, place...)...))
	return c
}

// NewCylinderTestScene creates a simple test scene with cylinders
func NewCylinderTestScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       400,
		Height:      225,
		FieldOfView: 50 * math.Pi / 180,
		From:        core.Point(0, 1.5, -4),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("cylinders", defaultCameraConfig, cameraOverrides)

	// Center: open gold tube angled so you can look down it
	center := newCylinder(0.35, 3.5, false,
		core.RotationX(-math.Pi/2+0.1), core.RotationY(0.1), core.Translation(-0.3, 1.0, 1.5))
	center.SetMaterial(gold())

	// Right: tall capped red cylinder
	right := newCylinder(0.5, 2, true, core.Translation(1.8, 0, 0))
	right.SetMaterial(matte(core.NewColor(0.8, 0.2, 0.2)))

	// Left: capped blue cylinder lying along x
	left := newCylinder(0.3, 1, true, core.RotationZ(-math.Pi/2), core.Translation(-2.5, 0.3, 0))
	left.SetMaterial(matte(core.NewColor(0.2, 0.2, 0.8)))

	// Small glass cylinder in front
	glass := newCylinder(0.2, 0.6, true, core.Translation(0.5, 0, -1))
	glass.SetMaterial(material.NewGlass())

	s.Add(groundPlane(), center, left, right, glass)
	s.AddPointLight(core.Point(3, 5, -3), core.White)
	return s
}
