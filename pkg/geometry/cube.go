package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube is the axis-aligned cube from -1 to 1 on every axis
type Cube struct {
	Object
}

// NewCube creates a cube with the default material
func NewCube() *Cube {
	return &Cube{Object: newObject()}
}

// Bounds returns the cube itself
func (c *Cube) Bounds() core.AABB {
	return core.NewAABB(core.Point(-1, -1, -1), core.Point(1, 1, 1))
}

// Includes reports whether other is this cube
func (c *Cube) Includes(other Shape) bool { return other == Shape(c) }

func (c *Cube) localIntersect(ray core.Ray) Intersections {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	for axis := range 3 {
		t0, t1, ok := checkAxis(ray.Origin.Component(axis), ray.Direction.Component(axis), -1, 1)
		if !ok {
			return nil
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
	}
	if tMin > tMax {
		return nil
	}
	return Intersections{NewIntersection(tMin, c), NewIntersection(tMax, c)}
}

func (c *Cube) localNormalAt(point core.Tuple, _ *Intersection) core.Tuple {
	ax, ay, az := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	switch math.Max(ax, math.Max(ay, az)) {
	case ax:
		return core.Vector(point.X, 0, 0)
	case ay:
		return core.Vector(0, point.Y, 0)
	default:
		return core.Vector(0, 0, point.Z)
	}
}

// checkAxis returns the interval of t where the ray lies between min and max
// along one axis. A ray parallel to the slab is either always or never
// inside it.
func checkAxis(origin, direction, min, max float64) (float64, float64, bool) {
	if math.Abs(direction) < core.Epsilon {
		if origin < min || origin > max {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	t0 := (min - origin) / direction
	t1 := (max - origin) / direction
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}
