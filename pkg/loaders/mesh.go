package loaders

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Mesh is an indexed triangle list. Normals, when present, hold one entry
// per vertex.
type Mesh struct {
	Vertices []core.Tuple
	Normals  []core.Tuple
	Faces    [][3]int // Zero-based vertex indices
}

// HasNormals reports whether the mesh carries a normal for every vertex
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0 && len(m.Normals) == len(m.Vertices)
}

// ToGroup builds a group of triangles, smooth ones when the mesh has vertex
// normals. Degenerate faces are skipped and counted.
func (m *Mesh) ToGroup() (*geometry.Group, int) {
	g := geometry.NewGroup()
	skipped := 0
	for _, f := range m.Faces {
		p := [3]core.Tuple{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
		var n *[3]core.Tuple
		if m.HasNormals() {
			n = &[3]core.Tuple{m.Normals[f[0]], m.Normals[f[1]], m.Normals[f[2]]}
		}
		tri, ok := newFace(p, n)
		if !ok {
			skipped++
			continue
		}
		g.AddChild(tri)
	}
	return g, skipped
}

// newFace creates a flat triangle, or a smooth one when normals are given.
// Faces with no area cannot be given a normal and are rejected.
func newFace(p [3]core.Tuple, n *[3]core.Tuple) (geometry.Shape, bool) {
	if p[1].Subtract(p[0]).Cross(p[2].Subtract(p[0])).Magnitude() < 1e-12 {
		return nil, false
	}
	if n != nil {
		return geometry.NewSmoothTriangle(p[0], p[1], p[2], n[0], n[1], n[2]), true
	}
	return geometry.NewTriangle(p[0], p[1], p[2]), true
}

// fan splits a convex polygon into triangles sharing its first vertex
func fan(indices []int) [][3]int {
	tris := make([][3]int, 0, len(indices)-2)
	for i := 1; i < len(indices)-1; i++ {
		tris = append(tris, [3]int{indices[0], indices[i], indices[i+1]})
	}
	return tris
}
