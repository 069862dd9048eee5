package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// parallelTolerance bounds |det| relative to the edge and direction lengths,
// so the parallel test does not depend on the size of the triangle
const parallelTolerance = 1e-12

// triangleData holds the vertices and precomputed edges shared by flat and
// smooth triangles
type triangleData struct {
	P1, P2, P3 core.Tuple
	E1, E2     core.Tuple // P2-P1 and P3-P1
}

func newTriangleData(p1, p2, p3 core.Tuple) triangleData {
	return triangleData{
		P1: p1, P2: p2, P3: p3,
		E1: p2.Subtract(p1),
		E2: p3.Subtract(p1),
	}
}

func (td *triangleData) bounds() core.AABB {
	return core.NewAABBFromPoints(td.P1, td.P2, td.P3)
}

// intersect runs the Möller–Trumbore test, returning t and the barycentric
// u, v of the hit
func (td *triangleData) intersect(ray core.Ray) (t, u, v float64, ok bool) {
	dirCrossE2 := ray.Direction.Cross(td.E2)
	det := td.E1.Dot(dirCrossE2)
	scale := td.E1.Magnitude() * td.E2.Magnitude() * ray.Direction.Magnitude()
	if math.Abs(det) <= parallelTolerance*scale {
		return 0, 0, 0, false
	}

	f := 1 / det
	p1ToOrigin := ray.Origin.Subtract(td.P1)
	u = f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	originCrossE1 := p1ToOrigin.Cross(td.E1)
	v = f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	return f * td.E2.Dot(originCrossE1), u, v, true
}

// Triangle is a flat triangle with a single face normal
type Triangle struct {
	Object
	triangleData
	Normal core.Tuple
}

// NewTriangle creates a triangle from three points. The normal follows the
// winding p1, p2, p3 by the left-hand rule.
func NewTriangle(p1, p2, p3 core.Tuple) *Triangle {
	td := newTriangleData(p1, p2, p3)
	return &Triangle{
		Object:       newObject(),
		triangleData: td,
		Normal:       td.E2.Cross(td.E1).Normalize(),
	}
}

// Bounds tightly encloses the three vertices
func (tr *Triangle) Bounds() core.AABB { return tr.bounds() }

// Includes reports whether other is this triangle
func (tr *Triangle) Includes(other Shape) bool { return other == Shape(tr) }

func (tr *Triangle) localIntersect(ray core.Ray) Intersections {
	t, u, v, ok := tr.intersect(ray)
	if !ok {
		return nil
	}
	return Intersections{NewIntersectionUV(t, tr, u, v)}
}

func (tr *Triangle) localNormalAt(core.Tuple, *Intersection) core.Tuple {
	return tr.Normal
}

// SmoothTriangle is a triangle whose normal is interpolated from per-vertex
// normals, hiding the facets of a tessellated surface
type SmoothTriangle struct {
	Object
	triangleData
	N1, N2, N3 core.Tuple
}

// NewSmoothTriangle creates a triangle with vertex normals n1, n2, n3
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Tuple) *SmoothTriangle {
	return &SmoothTriangle{
		Object:       newObject(),
		triangleData: newTriangleData(p1, p2, p3),
		N1:           n1,
		N2:           n2,
		N3:           n3,
	}
}

// Bounds tightly encloses the three vertices
func (st *SmoothTriangle) Bounds() core.AABB { return st.bounds() }

// Includes reports whether other is this triangle
func (st *SmoothTriangle) Includes(other Shape) bool { return other == Shape(st) }

func (st *SmoothTriangle) localIntersect(ray core.Ray) Intersections {
	t, u, v, ok := st.intersect(ray)
	if !ok {
		return nil
	}
	return Intersections{NewIntersectionUV(t, st, u, v)}
}

// localNormalAt blends the vertex normals by the hit's barycentric
// coordinates. Without the hit there is nothing to blend by, so it panics.
func (st *SmoothTriangle) localNormalAt(_ core.Tuple, hit *Intersection) core.Tuple {
	if hit == nil {
		panic("geometry: smooth triangle normal requires the intersection that produced the point")
	}
	return st.N2.Multiply(hit.U).
		Add(st.N3.Multiply(hit.V)).
		Add(st.N1.Multiply(1 - hit.U - hit.V))
}
