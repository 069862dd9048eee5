package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Group is a collection of shapes transformed together. Its bounding box is
// the union of its children's boxes in the group's own space and is tested
// before any child, so whole subtrees are skipped by rays that miss them.
type Group struct {
	Object
	children []Shape
	bounds   core.AABB
}

// NewGroup creates an empty group
func NewGroup() *Group {
	return &Group{Object: newObject(), bounds: core.EmptyAABB()}
}

// Kind returns KindGroup
func (g *Group) Kind() Kind { return KindGroup }

// AddChild appends shapes to the group and grows its bounds to cover each
// child's transformed box. Adding a group to itself, directly or through a
// descendant, panics.
func (g *Group) AddChild(children ...Shape) {
	for _, c := range children {
		if c.Includes(g) {
			panic("geometry: a group cannot contain itself")
		}
		c.setParent(g)
		g.children = append(g.children, c)
		g.bounds = g.bounds.Union(parentSpaceBounds(c))
	}
}

// Children returns the group's direct children
func (g *Group) Children() []Shape { return g.children }

// Bounds returns the union of the children's boxes. An empty group has an
// empty box.
func (g *Group) Bounds() core.AABB { return g.bounds }

// SetMaterial sets the material of the group and of every shape in it
func (g *Group) SetMaterial(m *material.Material) {
	g.Object.SetMaterial(m)
	for _, c := range g.children {
		c.SetMaterial(m)
	}
}

// Includes reports whether s is the group or anything inside it
func (g *Group) Includes(s Shape) bool {
	if s == Shape(g) {
		return true
	}
	for _, c := range g.children {
		if c.Includes(s) {
			return true
		}
	}
	return false
}

func (g *Group) localIntersect(ray core.Ray) Intersections {
	if !g.bounds.Hit(ray, math.Inf(-1), math.Inf(1)) {
		return nil
	}
	var xs Intersections
	for _, c := range g.children {
		xs = append(xs, Intersect(c, ray)...)
	}
	xs.Sort()
	return xs
}

func (g *Group) localNormalAt(core.Tuple, *Intersection) core.Tuple {
	panic("geometry: normals are computed on the shape that was hit, not its group")
}

// parentSpaceBounds returns the box of s in the space of its parent
func parentSpaceBounds(s Shape) core.AABB {
	return s.Bounds().Transform(s.Transform().Matrix())
}
