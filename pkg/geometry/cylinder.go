package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a radius 1 cylinder around the y axis, truncated to
// (Minimum, Maximum). Closed cylinders have caps at both ends.
type Cylinder struct {
	Object
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCylinder creates an infinite, open cylinder
func NewCylinder() *Cylinder {
	return &Cylinder{Object: newObject(), Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// NewTruncatedCylinder creates a cylinder spanning min to max in y
func NewTruncatedCylinder(min, max float64, closed bool) *Cylinder {
	c := NewCylinder()
	c.Minimum, c.Maximum, c.Closed = min, max, closed
	return c
}

// Bounds spans the truncated height with radius 1
func (c *Cylinder) Bounds() core.AABB {
	return core.NewAABB(core.Point(-1, c.Minimum, -1), core.Point(1, c.Maximum, 1))
}

// Includes reports whether other is this cylinder
func (c *Cylinder) Includes(other Shape) bool { return other == Shape(c) }

func (c *Cylinder) localIntersect(ray core.Ray) Intersections {
	d, o := ray.Direction, ray.Origin
	var xs Intersections

	// A ray parallel to the y axis can only hit the caps
	if a := d.X*d.X + d.Z*d.Z; math.Abs(a) >= core.Epsilon {
		b := 2*o.X*d.X + 2*o.Z*d.Z
		cc := o.X*o.X + o.Z*o.Z - 1

		discriminant := b*b - 4*a*cc
		if discriminant < 0 {
			return nil
		}
		xs = c.appendWalls(xs, ray, a, b, discriminant)
	}

	return c.appendCaps(xs, ray)
}

// appendWalls keeps the quadratic roots whose y lies strictly inside the
// truncated height
func (c *Cylinder) appendWalls(xs Intersections, ray core.Ray, a, b, discriminant float64) Intersections {
	sqrtD := math.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	for _, t := range []float64{t0, t1} {
		if y := ray.Origin.Y + t*ray.Direction.Y; c.Minimum < y && y < c.Maximum {
			xs = append(xs, NewIntersection(t, c))
		}
	}
	return xs
}

// appendCaps adds hits on the end caps of a closed cylinder
func (c *Cylinder) appendCaps(xs Intersections, ray core.Ray) Intersections {
	if !c.Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}
	for _, y := range []float64{c.Minimum, c.Maximum} {
		t := (y - ray.Origin.Y) / ray.Direction.Y
		if withinRadius(ray, t, 1) {
			xs = append(xs, NewIntersection(t, c))
		}
	}
	return xs
}

func (c *Cylinder) localNormalAt(point core.Tuple, _ *Intersection) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z
	switch {
	case dist < 1 && point.Y >= c.Maximum-core.Epsilon:
		return core.Vector(0, 1, 0)
	case dist < 1 && point.Y <= c.Minimum+core.Epsilon:
		return core.Vector(0, -1, 0)
	default:
		return core.Vector(point.X, 0, point.Z)
	}
}

// withinRadius reports whether the ray at t lies within radius of the y axis
func withinRadius(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius
}
