package core

import "math"

// AABB represents an axis-aligned bounding box. Extents may be infinite
// (planes are unbounded in x and z).
type AABB struct {
	Min Tuple // Minimum corner
	Max Tuple // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Tuple) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns a box that contains nothing. Any union with it yields
// the other box.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Point(inf, inf, inf), Max: Point(-inf, -inf, -inf)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Tuple) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.AddPoint(p)
	}
	return box
}

// IsEmpty returns true if the box contains no points
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// AddPoint returns the box grown to include p
func (aabb AABB) AddPoint(p Tuple) AABB {
	return AABB{
		Min: Point(math.Min(aabb.Min.X, p.X), math.Min(aabb.Min.Y, p.Y), math.Min(aabb.Min.Z, p.Z)),
		Max: Point(math.Max(aabb.Max.X, p.X), math.Max(aabb.Max.Y, p.Y), math.Max(aabb.Max.Z, p.Z)),
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return aabb.AddPoint(other.Min).AddPoint(other.Max)
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	if aabb.IsEmpty() {
		return false
	}
	for axis := range 3 {
		min := aabb.Min.Component(axis)
		max := aabb.Max.Component(axis)
		origin := ray.Origin.Component(axis)
		direction := ray.Direction.Component(axis)

		// Ray parallel to this slab
		if math.Abs(direction) < 1e-12 {
			if origin < min || origin > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// ContainsPoint returns true if p lies inside or on the box
func (aabb AABB) ContainsPoint(p Tuple) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// ContainsBox returns true if other lies entirely inside the box
func (aabb AABB) ContainsBox(other AABB) bool {
	return aabb.ContainsPoint(other.Min) && aabb.ContainsPoint(other.Max)
}

// Transform returns the axis-aligned box bounding this box after the affine
// transformation m. The result equals transforming all 8 corners and taking
// the min/max, but infinite extents do not produce NaNs.
func (aabb AABB) Transform(m Matrix) AABB {
	if aabb.IsEmpty() {
		return aabb
	}
	var lo, hi [3]float64
	for i := range 3 {
		lo[i] = m.At(i, 3)
		hi[i] = m.At(i, 3)
		for j := range 3 {
			e := m.At(i, j)
			if e == 0 {
				continue
			}
			a := e * aabb.Min.Component(j)
			b := e * aabb.Max.Component(j)
			lo[i] += math.Min(a, b)
			hi[i] += math.Max(a, b)
		}
	}
	return AABB{Min: Point(lo[0], lo[1], lo[2]), Max: Point(hi[0], hi[1], hi[2])}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Tuple {
	return Point(
		(aabb.Min.X+aabb.Max.X)*0.5,
		(aabb.Min.Y+aabb.Max.Y)*0.5,
		(aabb.Min.Z+aabb.Max.Z)*0.5,
	)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Tuple {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X >= size.Y && size.X >= size.Z {
		return 0
	}
	if size.Y >= size.Z {
		return 1
	}
	return 2
}

// Split cuts the box in half at the midpoint of its longest axis
func (aabb AABB) Split() (left, right AABB) {
	axis := aabb.LongestAxis()
	mid := midpoint(aabb.Min.Component(axis), aabb.Max.Component(axis))

	leftMax := aabb.Max
	rightMin := aabb.Min
	switch axis {
	case 0:
		leftMax.X, rightMin.X = mid, mid
	case 1:
		leftMax.Y, rightMin.Y = mid, mid
	default:
		leftMax.Z, rightMin.Z = mid, mid
	}
	return AABB{Min: aabb.Min, Max: leftMax}, AABB{Min: rightMin, Max: aabb.Max}
}

// MostlyBelow reports whether at least two of the box's min, centre and max
// along axis lie at or below split. Boxes straddling the split go to the
// side holding their centre.
func (aabb AABB) MostlyBelow(axis int, split float64) bool {
	lo, hi := aabb.Min.Component(axis), aabb.Max.Component(axis)
	count := 0
	for _, v := range []float64{lo, (lo + hi) * 0.5, hi} {
		if v <= split {
			count++
		}
	}
	return count >= 2
}

// midpoint of [lo, hi], falling back to the finite end (or 0) for
// unbounded extents
func midpoint(lo, hi float64) float64 {
	switch {
	case math.IsInf(lo, -1) && math.IsInf(hi, 1):
		return 0
	case math.IsInf(lo, -1):
		return hi
	case math.IsInf(hi, 1):
		return lo
	}
	return (lo + hi) * 0.5
}
