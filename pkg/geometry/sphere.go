package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere is a unit sphere centred on the object-space origin
type Sphere struct {
	Object
}

// NewSphere creates a unit sphere with the default material
func NewSphere() *Sphere {
	return &Sphere{Object: newObject()}
}

// NewGlassSphere creates a unit sphere made of glass
func NewGlassSphere() *Sphere {
	s := NewSphere()
	s.SetMaterial(material.NewGlass())
	return s
}

// Bounds returns the unit cube
func (s *Sphere) Bounds() core.AABB {
	return core.NewAABB(core.Point(-1, -1, -1), core.Point(1, 1, 1))
}

// Includes reports whether other is this sphere
func (s *Sphere) Includes(other Shape) bool { return other == Shape(s) }

func (s *Sphere) localIntersect(ray core.Ray) Intersections {
	sphereToRay := ray.Origin.Subtract(core.Origin)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return Intersections{NewIntersection(t1, s), NewIntersection(t2, s)}
}

func (s *Sphere) localNormalAt(point core.Tuple, _ *Intersection) core.Tuple {
	return point.Subtract(core.Origin)
}
