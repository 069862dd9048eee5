package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewPatternScene shows every pattern: a floor of checkers made from
// nested stripes and a gradient, and a row of spheres painted with rings,
// blend, noise and position patterns
func NewPatternScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       500,
		Height:      500,
		FieldOfView: math.Pi / 4,
		From:        core.Point(0, 2, -6),
		To:          core.Point(0, 0.5, 0),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("patterns", defaultCameraConfig, cameraOverrides)

	inner := material.NewStripes(
		material.NewSolid(core.NewColor(0.2, 0.75, 0.4)),
		material.NewSolid(core.NewColor(0.8, 0.6, 0.3)),
	)
	inner.SetTransform(core.Chain(core.Scaling(0.2, 0.2, 0.2), core.RotationY(math.Pi/2)))
	stripes := material.NewStripes(material.NewSolid(core.NewColor(0, 0, 1)), inner)
	stripes.SetTransform(core.Chain(core.Scaling(0.2, 0.2, 0.2), core.RotationY(math.Pi/4)))
	gradient := material.NewGradient(core.NewColor(1, 0, 0), core.White)
	gradient.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.RotationY(math.Pi/2)))

	floor := geometry.NewPlane()
	floor.SetMaterial(patterned(material.NewCheckers(stripes, gradient)))

	rings := material.NewRings(material.NewSolid(core.NewColor(0.9, 0.9, 0.2)), material.NewSolid(core.NewColor(0.6, 0.1, 0.1)))
	rings.SetTransform(core.Chain(core.Scaling(0.15, 0.15, 0.15), core.RotationX(math.Pi/3)))

	blend := material.NewBlend(
		stripesOf(core.White, core.NewColor(0.1, 0.4, 0.8), core.Scaling(0.2, 0.2, 0.2)),
		stripesOf(core.White, core.NewColor(0.1, 0.4, 0.8), core.Scaling(0.2, 0.2, 0.2), core.RotationY(math.Pi/2)),
		0.5,
	)

	noise := material.NewNoise(material.NewSolid(core.White), material.NewSolid(core.NewColor(0.3, 0.2, 0.1)), 11)
	noise.SetTransform(core.Scaling(0.2, 0.2, 0.2))

	position := material.NewPosition()
	position.SetTransform(core.Chain(core.Scaling(2, 2, 2), core.Translation(-1, -1, -1)))

	for i, p := range []material.Pattern{rings, blend, noise, position} {
		sphere := geometry.NewSphere()
		sphere.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(-1.8+1.2*float64(i), 0.5, 0)))
		m := patterned(p)
		m.Specular = 0.3
		sphere.SetMaterial(m)
		s.Add(sphere)
	}

	s.Add(floor)
	s.AddPointLight(core.Point(-10, 10, -10), core.White)
	return s
}

func stripesOf(a, b core.Color, transform ...core.Matrix) *material.Stripes {
	p := material.NewStripes(material.NewSolid(a), material.NewSolid(b))
	p.SetTransform(core.Chain(transform...))
	return p
}
