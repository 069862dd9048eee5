package geometry

import (
	"cmp"
	"slices"
)

// Intersection records where along a ray a shape was hit. U and V are the
// barycentric coordinates of triangle hits.
type Intersection struct {
	T     float64
	Shape Shape
	U, V  float64
}

// NewIntersection creates an intersection at t
func NewIntersection(t float64, s Shape) Intersection {
	return Intersection{T: t, Shape: s}
}

// NewIntersectionUV creates a triangle intersection at t with barycentric u, v
func NewIntersectionUV(t float64, s Shape, u, v float64) Intersection {
	return Intersection{T: t, Shape: s, U: u, V: v}
}

// Intersections is a list of intersections, normally sorted by ascending t
type Intersections []Intersection

// Sort orders the intersections by ascending t. Equal t values keep their
// relative order.
func (xs Intersections) Sort() {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}

// Hit returns the visible intersection: the one with the lowest
// non-negative t. An empty or all-negative list is a miss.
func (xs Intersections) Hit() (Intersection, bool) {
	best := -1
	for i, x := range xs {
		if x.T < 0 {
			continue
		}
		if best < 0 || x.T < xs[best].T {
			best = i
		}
	}
	if best < 0 {
		return Intersection{}, false
	}
	return xs[best], true
}
