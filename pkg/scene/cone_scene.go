package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// newFrustum creates a cone section standing on the origin, bottomRadius
// wide at y=0 and topRadius wide at y=height, then moves it into place. A
// topRadius of zero gives a pointed cone.
func newFrustum(bottomRadius, topRadius, height float64, closed bool, place ...core.Matrix) *geometry.Cone {
	// The unit cone's radius equals |y|, so the section between y=-bottom
	// and y=-top has exactly the wanted radii
	c := geometry.NewTruncatedCone(-bottomRadius, -topRadius, closed)
	stretch := height / (bottomRadius - topRadius)
	local := core.Chain(core.Translation(0, bottomRadius, 0), core.Scaling(1, stretch, 1))
	c.SetTransform(core.Chain(append([]core.Matrix{local}, place...)...))
	return c
}

// NewConeTestScene creates a simple test scene with cones and frustums
func NewConeTestScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       400,
		Height:      225,
		FieldOfView: 50 * math.Pi / 180,
		From:        core.Point(0, 1.5, -4),
		To:          core.Point(0, 0.8, 0),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("cones", defaultCameraConfig, cameraOverrides)

	// Central tall pointed red cone
	center := newFrustum(0.5, 0, 2, true)
	center.SetMaterial(matte(core.NewColor(0.8, 0.2, 0.2)))

	// Left gold frustum tipped back so its base faces the camera
	left := newFrustum(0.5, 0.2, 1.4, true, core.RotationX(math.Pi/3), core.Translation(-2, 0.5, 0.8))
	left.SetMaterial(gold())

	// Right: wide short blue frustum with a glass cone on top
	right := newFrustum(0.8, 0.5, 0.6, true, core.Translation(2, 0, 0))
	right.SetMaterial(matte(core.NewColor(0.2, 0.2, 0.8)))
	glassTop := newFrustum(0.5, 0, 1.2, true, core.Translation(2, 0.6, 0))
	glassTop.SetMaterial(material.NewGlass())

	// Open green frustum, tilted
	tilted := newFrustum(0.4, 0.15, 1.2, false, core.RotationZ(-0.25), core.Translation(-1.5, 0, 0.5))
	tilted.SetMaterial(matte(core.NewColor(0.2, 0.8, 0.2)))

	// Two small glass cones in front, one resting on the ground and one floating
	touching := newFrustum(0.3, 0, 0.8, true, core.Translation(-0.8, 0, -1.2))
	touching.SetMaterial(material.NewGlass())
	floating := newFrustum(0.3, 0, 0.8, true, core.Translation(0.8, 0.2, -1.2))
	floating.SetMaterial(material.NewGlass())

	// An hourglass: the full double cone, which the other shapes never show
	hourglass := geometry.NewTruncatedCone(-1, 1, false)
	hourglass.SetTransform(core.Chain(core.Scaling(0.25, 0.5, 0.25), core.Translation(0, 0.5, 1.8)))
	hourglass.SetMaterial(matte(core.NewColor(0.9, 0.9, 0.3)))

	s.Add(groundPlane(), center, left, right, glassTop, tilted, touching, floating, hourglass)
	s.AddPointLight(core.Point(3, 5, -3), core.White)
	return s
}
