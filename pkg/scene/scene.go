package scene

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene
// and no scene file
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *world.World
	CameraConfig renderer.CameraConfig
}

// newScene creates an empty scene whose camera starts from the defaults
// with any overrides merged in
func newScene(name string, defaults renderer.CameraConfig, overrides []renderer.CameraConfig) *Scene {
	cfg := defaults
	if len(overrides) > 0 {
		cfg = renderer.MergeCameraConfig(defaults, overrides[0])
	}
	return &Scene{Name: name, World: world.New(), CameraConfig: cfg}
}

// Camera builds the camera described by the scene's camera config
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCameraFromConfig(s.CameraConfig)
}

// Add appends shapes to the world
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.World.AddObject(shapes...)
}

// AddPointLight adds a point light to the world
func (s *Scene) AddPointLight(position core.Tuple, intensity core.Color) {
	s.World.AddLight(lights.NewPointLight(position, intensity))
}

// Optimize builds a bounding volume hierarchy inside every top-level group.
// It must run before rendering starts.
func (s *Scene) Optimize(threshold int) {
	for _, obj := range s.World.Objects {
		if g, ok := obj.(*geometry.Group); ok {
			g.Optimize(threshold, geometry.DefaultMaxDepth)
		}
	}
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.World.Objects {
		count += countPrimitives(shape)
	}
	return count
}

// countPrimitives counts the leaves below a shape. A CSG node counts its
// operands.
func countPrimitives(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.Group:
		n := 0
		for _, c := range obj.Children() {
			n += countPrimitives(c)
		}
		return n
	case *geometry.CSG:
		return countPrimitives(obj.Left()) + countPrimitives(obj.Right())
	default:
		return 1
	}
}

// phong returns a material with the given color and Phong terms, leaving the
// rest at their defaults
func phong(c core.Color, diffuse, specular float64) *material.Material {
	m := material.DefaultMaterial()
	m.Color = c
	m.Diffuse = diffuse
	m.Specular = specular
	return m
}

// patterned returns a default material painted with p
func patterned(p material.Pattern) *material.Material {
	m := material.DefaultMaterial()
	m.Pattern = p
	return m
}

// checkers is a two-color checker pattern with an optional transform
func checkers(a, b core.Color, transform ...core.Matrix) *material.Checkers {
	p := material.NewCheckers(material.NewSolid(a), material.NewSolid(b))
	if len(transform) > 0 {
		p.SetTransform(core.Chain(transform...))
	}
	return p
}
