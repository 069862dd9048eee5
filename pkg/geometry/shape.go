package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Kind identifies which variant of Shape a value is
type Kind int

const (
	KindPrimitive Kind = iota
	KindGroup
	KindCSG
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindGroup:
		return "group"
	case KindCSG:
		return "csg"
	default:
		return "unknown"
	}
}

// Shape is anything a ray can be intersected with. The set of shapes is
// closed: every implementation lives in this package and embeds Object.
type Shape interface {
	Kind() Kind

	Transform() core.Transform
	SetTransform(m core.Matrix)
	Material() *material.Material
	SetMaterial(m *material.Material)

	// Parent is the Group or CSG node holding this shape, or nil
	Parent() Shape

	// Bounds is the object-space bounding box
	Bounds() core.AABB

	// Includes reports whether s is this shape or one of its descendants
	Includes(s Shape) bool

	WorldToObject(point core.Tuple) core.Tuple
	NormalToWorld(normal core.Tuple) core.Tuple

	setParent(p Shape)
	localIntersect(ray core.Ray) Intersections
	localNormalAt(point core.Tuple, hit *Intersection) core.Tuple
}

// Intersect transforms the ray into the shape's object space and returns
// every intersection along it, negative t values included
func Intersect(s Shape, ray core.Ray) Intersections {
	return s.localIntersect(ray.Transform(s.Transform().Inverse()))
}

// NormalAt returns the unit world-space surface normal at a world-space
// point. hit is the intersection that produced the point; smooth triangles
// need it to interpolate their vertex normals.
func NormalAt(s Shape, worldPoint core.Tuple, hit *Intersection) core.Tuple {
	local := s.WorldToObject(worldPoint)
	return s.NormalToWorld(s.localNormalAt(local, hit))
}

// Object holds the state shared by every shape. It is embedded, never used
// on its own.
type Object struct {
	transform core.Transform
	material  *material.Material
	parent    Shape
}

func newObject() Object {
	return Object{
		transform: core.IdentityTransform(),
		material:  material.DefaultMaterial(),
	}
}

// Kind defaults to primitive; Group and CSG override it
func (o *Object) Kind() Kind { return KindPrimitive }

// Transform returns the object-to-parent transform
func (o *Object) Transform() core.Transform { return o.transform }

// SetTransform replaces the transform and its cached inverse. Set it before
// adding the shape to a Group, whose bounds are fixed as children arrive.
// A singular matrix panics.
func (o *Object) SetTransform(m core.Matrix) { o.transform = core.NewTransform(m) }

// Material returns the shape's material
func (o *Object) Material() *material.Material { return o.material }

// SetMaterial replaces the shape's material
func (o *Object) SetMaterial(m *material.Material) { o.material = m }

// Parent returns the containing Group or CSG node
func (o *Object) Parent() Shape { return o.parent }

func (o *Object) setParent(p Shape) { o.parent = p }

// WorldToObject converts a world-space point to object space, applying every
// ancestor's inverse transform from the root down
func (o *Object) WorldToObject(point core.Tuple) core.Tuple {
	if o.parent != nil {
		point = o.parent.WorldToObject(point)
	}
	return o.transform.Inverse().MulTuple(point)
}

// NormalToWorld converts an object-space normal to a unit world-space normal,
// applying the inverse transpose of each transform from here up to the root
func (o *Object) NormalToWorld(normal core.Tuple) core.Tuple {
	normal = o.transform.InverseTranspose().MulTuple(normal)
	normal.W = 0
	normal = normal.Normalize()
	if o.parent != nil {
		normal = o.parent.NormalToWorld(normal)
	}
	return normal
}
