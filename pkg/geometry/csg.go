package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Operation is a constructive solid geometry boolean operator
type Operation int

const (
	OpUnion Operation = iota
	OpIntersection
	OpDifference
)

func (op Operation) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpDifference:
		return "difference"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// ParseOperation converts a name such as "difference" to an Operation
func ParseOperation(name string) (Operation, error) {
	for _, op := range []Operation{OpUnion, OpIntersection, OpDifference} {
		if op.String() == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown csg operation %q", name)
}

// CSG combines two shapes with a boolean operation. Both children get the
// node as their parent.
type CSG struct {
	Object
	Operation Operation
	left      Shape
	right     Shape
	bounds    core.AABB
}

// NewCSG creates a CSG node over left and right
func NewCSG(op Operation, left, right Shape) *CSG {
	c := &CSG{Object: newObject(), Operation: op, left: left, right: right}
	left.setParent(c)
	right.setParent(c)
	c.bounds = parentSpaceBounds(left).Union(parentSpaceBounds(right))
	return c
}

// Kind returns KindCSG
func (c *CSG) Kind() Kind { return KindCSG }

// Left returns the left operand
func (c *CSG) Left() Shape { return c.left }

// Right returns the right operand
func (c *CSG) Right() Shape { return c.right }

// Bounds covers both operands
func (c *CSG) Bounds() core.AABB { return c.bounds }

// SetMaterial sets the material of the node and of both operands
func (c *CSG) SetMaterial(m *material.Material) {
	c.Object.SetMaterial(m)
	c.left.SetMaterial(m)
	c.right.SetMaterial(m)
}

// Includes reports whether s is the node or anything inside either operand
func (c *CSG) Includes(s Shape) bool {
	return s == Shape(c) || c.left.Includes(s) || c.right.Includes(s)
}

// IntersectionAllowed decides whether a hit survives the operation. lhit is
// true when the left operand was hit; inl and inr track whether the ray is
// currently inside each operand. An unknown operation panics.
func IntersectionAllowed(op Operation, lhit, inl, inr bool) bool {
	switch op {
	case OpUnion:
		return (lhit && !inr) || (!lhit && !inl)
	case OpIntersection:
		return (lhit && inr) || (!lhit && inl)
	case OpDifference:
		return (lhit && !inr) || (!lhit && inl)
	default:
		panic(fmt.Sprintf("geometry: invalid csg operation %v", op))
	}
}

// Filter keeps the sorted intersections that lie on the surface of the
// combined solid
func (c *CSG) Filter(xs Intersections) Intersections {
	var inl, inr bool
	var result Intersections
	for _, x := range xs {
		lhit := c.left.Includes(x.Shape)
		if IntersectionAllowed(c.Operation, lhit, inl, inr) {
			result = append(result, x)
		}
		if lhit {
			inl = !inl
		} else {
			inr = !inr
		}
	}
	return result
}

func (c *CSG) localIntersect(ray core.Ray) Intersections {
	if !c.bounds.Hit(ray, math.Inf(-1), math.Inf(1)) {
		return nil
	}
	xs := append(Intersect(c.left, ray), Intersect(c.right, ray)...)
	xs.Sort()
	return c.Filter(xs)
}

func (c *CSG) localNormalAt(core.Tuple, *Intersection) core.Tuple {
	panic("geometry: normals are computed on the operand that was hit, not the csg node")
}
