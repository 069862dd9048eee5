package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite xz plane through the object-space origin
type Plane struct {
	Object
}

// NewPlane creates a plane with the default material
func NewPlane() *Plane {
	return &Plane{Object: newObject()}
}

// Bounds is unbounded in x and z and flat in y
func (p *Plane) Bounds() core.AABB {
	inf := math.Inf(1)
	return core.NewAABB(core.Point(-inf, 0, -inf), core.Point(inf, 0, inf))
}

// Includes reports whether other is this plane
func (p *Plane) Includes(other Shape) bool { return other == Shape(p) }

func (p *Plane) localIntersect(ray core.Ray) Intersections {
	// Parallel or coplanar rays never register a hit
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}
	t := -ray.Origin.Y / ray.Direction.Y
	return Intersections{NewIntersection(t, p)}
}

func (p *Plane) localNormalAt(core.Tuple, *Intersection) core.Tuple {
	return core.Vector(0, 1, 0)
}
