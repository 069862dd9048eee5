package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewCSGScene creates a marbled cube fused with a glass sphere inside a
// large checkered room, next to a die carved from a cube and a sphere
func NewCSGScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       500,
		Height:      500,
		FieldOfView: math.Pi / 4,
		From:        core.Point(5, 3, -8),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("csg", defaultCameraConfig, cameraOverrides)

	room := geometry.NewCube()
	room.SetTransform(core.Chain(core.Scaling(10, 10, 10), core.Translation(0, 10, 0)))
	room.SetMaterial(patterned(checkers(core.White, core.NewColor(0.7, 0.7, 0.7), core.Scaling(0.2, 0.2, 0.2))))

	marble := material.NewNoise(
		material.NewSolid(core.NewColor(0.75, 0.02, 0.15)),
		material.NewSolid(core.NewColor(1, 0.2, 0.2)),
		3,
	)
	marble.SetTransform(core.Scaling(0.1, 3, 0.05))
	cube := geometry.NewCube()
	cm := patterned(marble)
	cm.Ambient = 0.6
	cm.Diffuse = 0.96
	cm.Specular = 0.95
	cm.Shininess = 500
	cube.SetMaterial(cm)

	glass := geometry.NewGlassSphere()
	glass.SetTransform(core.Translation(0.25, 0.5, 0.25))

	union := geometry.NewCSG(geometry.OpUnion, cube, glass)
	union.SetTransform(core.Chain(core.RotationY(math.Pi/8), core.Translation(0, 0.5, 0)))

	// A die: the cube's corners rounded off by intersecting with a sphere,
	// then a dimple cut from the top face
	dieCube := geometry.NewCube()
	dieSphere := geometry.NewSphere()
	dieSphere.SetTransform(core.Scaling(1.4, 1.4, 1.4))
	body := geometry.NewCSG(geometry.OpIntersection, dieCube, dieSphere)

	dimple := geometry.NewSphere()
	dimple.SetTransform(core.Chain(core.Scaling(0.3, 0.3, 0.3), core.Translation(0, 1.1, 0)))
	die := geometry.NewCSG(geometry.OpDifference, body, dimple)
	die.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.RotationY(-math.Pi/5), core.Translation(-2, 0.5, 0.5)))
	die.SetMaterial(phong(core.NewColor(0.9, 0.9, 1), 0.8, 0.6))

	s.Add(room, union, die)
	s.AddPointLight(core.Point(7, 7, -7), core.White)
	return s
}
