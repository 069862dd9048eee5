package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is a double-napped cone around the y axis with its apex at the
// origin, truncated to (Minimum, Maximum). Its radius at height y is |y|.
type Cone struct {
	Object
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCone creates an infinite, open double cone
func NewCone() *Cone {
	return &Cone{Object: newObject(), Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// NewTruncatedCone creates a cone spanning min to max in y
func NewTruncatedCone(min, max float64, closed bool) *Cone {
	c := NewCone()
	c.Minimum, c.Maximum, c.Closed = min, max, closed
	return c
}

// Bounds spans the truncated height, as wide as the widest end
func (c *Cone) Bounds() core.AABB {
	r := math.Max(math.Abs(c.Minimum), math.Abs(c.Maximum))
	return core.NewAABB(core.Point(-r, c.Minimum, -r), core.Point(r, c.Maximum, r))
}

// Includes reports whether other is this cone
func (c *Cone) Includes(other Shape) bool { return other == Shape(c) }

func (c *Cone) localIntersect(ray core.Ray) Intersections {
	d, o := ray.Direction, ray.Origin
	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	var xs Intersections
	switch {
	case math.Abs(a) < core.Epsilon && math.Abs(b) < core.Epsilon:
		// Parallel to a nappe through the apex: walls are missed
	case math.Abs(a) < core.Epsilon:
		// Parallel to one nappe: a single wall hit
		t := -cc / (2 * b)
		if y := o.Y + t*d.Y; c.Minimum < y && y < c.Maximum {
			xs = append(xs, NewIntersection(t, c))
		}
	default:
		if discriminant := b*b - 4*a*cc; discriminant >= 0 {
			sqrtD := math.Sqrt(discriminant)
			t0 := (-b - sqrtD) / (2 * a)
			t1 := (-b + sqrtD) / (2 * a)
			if t0 > t1 {
				t0, t1 = t1, t0
			}
			for _, t := range []float64{t0, t1} {
				if y := o.Y + t*d.Y; c.Minimum < y && y < c.Maximum {
					xs = append(xs, NewIntersection(t, c))
				}
			}
		}
	}

	if !c.Closed || math.Abs(d.Y) < core.Epsilon {
		return xs
	}
	for _, y := range []float64{c.Minimum, c.Maximum} {
		t := (y - o.Y) / d.Y
		if withinRadius(ray, t, math.Abs(y)) {
			xs = append(xs, NewIntersection(t, c))
		}
	}
	return xs
}

func (c *Cone) localNormalAt(point core.Tuple, _ *Intersection) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z
	switch {
	case dist < c.Maximum*c.Maximum && point.Y >= c.Maximum-core.Epsilon:
		return core.Vector(0, 1, 0)
	case dist < c.Minimum*c.Minimum && point.Y <= c.Minimum+core.Epsilon:
		return core.Vector(0, -1, 0)
	}

	// The apex has no side normal; treat it as facing up the axis.
	if dist < core.Epsilon*core.Epsilon && math.Abs(point.Y) < core.Epsilon {
		return core.Vector(0, 1, 0)
	}

	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.Vector(point.X, y, point.Z)
}
