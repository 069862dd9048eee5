package core

import (
	"fmt"
	"math"
)

// Epsilon is the absolute tolerance used for floating point comparisons,
// for nudging hit points off surfaces, and for singularity checks.
const Epsilon = 1e-4

// ApproxEqual reports whether a and b differ by less than Epsilon
func ApproxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < Epsilon
}

// Tuple is a homogeneous 4-component value. W=1 marks a point, W=0 a vector.
type Tuple struct {
	X, Y, Z, W float64
}

// NewTuple creates a raw tuple with an explicit w component
func NewTuple(x, y, z, w float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: w}
}

// Point creates a point (w=1)
func Point(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 1}
}

// Vector creates a vector (w=0)
func Vector(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 0}
}

// Origin is the point (0, 0, 0)
var Origin = Point(0, 0, 0)

// IsPoint reports whether the tuple is tagged as a point
func (t Tuple) IsPoint() bool {
	return ApproxEqual(t.W, 1)
}

// IsVector reports whether the tuple is tagged as a vector
func (t Tuple) IsVector() bool {
	return ApproxEqual(t.W, 0)
}

// Add returns t + other. Adding two points panics.
func (t Tuple) Add(other Tuple) Tuple {
	if t.W+other.W > 1+Epsilon {
		panic("core: adding two points is not supported")
	}
	return Tuple{t.X + other.X, t.Y + other.Y, t.Z + other.Z, t.W + other.W}
}

// Subtract returns t - other. Subtracting a point from a vector panics.
func (t Tuple) Subtract(other Tuple) Tuple {
	if t.W-other.W < -Epsilon {
		panic("core: subtracting a point from a vector is not supported")
	}
	return Tuple{t.X - other.X, t.Y - other.Y, t.Z - other.Z, t.W - other.W}
}

// Negate flips x, y and z. The point/vector tag is preserved.
func (t Tuple) Negate() Tuple {
	return Tuple{-t.X, -t.Y, -t.Z, t.W}
}

// Multiply scales x, y and z by a scalar, preserving the tag
func (t Tuple) Multiply(scalar float64) Tuple {
	return Tuple{t.X * scalar, t.Y * scalar, t.Z * scalar, t.W}
}

// Divide divides x, y and z by a scalar, preserving the tag
func (t Tuple) Divide(scalar float64) Tuple {
	return Tuple{t.X / scalar, t.Y / scalar, t.Z / scalar, t.W}
}

// Magnitude returns the length of the tuple
func (t Tuple) Magnitude() float64 {
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W)
}

// Normalize returns a unit vector in the same direction.
// Normalizing a zero-length vector has no defined direction and panics.
func (t Tuple) Normalize() Tuple {
	m := t.Magnitude()
	if m < Epsilon*Epsilon {
		panic("core: cannot normalize a zero-length vector")
	}
	return Tuple{t.X / m, t.Y / m, t.Z / m, t.W / m}
}

// Dot returns the dot product of two tuples
func (t Tuple) Dot(other Tuple) float64 {
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z + t.W*other.W
}

// Cross returns the cross product of two vectors
func (t Tuple) Cross(other Tuple) Tuple {
	return Vector(
		t.Y*other.Z-t.Z*other.Y,
		t.Z*other.X-t.X*other.Z,
		t.X*other.Y-t.Y*other.X,
	)
}

// Reflect reflects the vector about the given normal
func (t Tuple) Reflect(normal Tuple) Tuple {
	return t.Subtract(normal.Multiply(2 * t.Dot(normal)))
}

// Component returns x, y or z for axis 0, 1 or 2
func (t Tuple) Component(axis int) float64 {
	switch axis {
	case 0:
		return t.X
	case 1:
		return t.Y
	default:
		return t.Z
	}
}

// Equal reports approximate equality of all four components
func (t Tuple) Equal(other Tuple) bool {
	return ApproxEqual(t.X, other.X) &&
		ApproxEqual(t.Y, other.Y) &&
		ApproxEqual(t.Z, other.Z) &&
		ApproxEqual(t.W, other.W)
}

func (t Tuple) String() string {
	switch {
	case t.IsPoint():
		return fmt.Sprintf("Point(%g, %g, %g)", t.X, t.Y, t.Z)
	case t.IsVector():
		return fmt.Sprintf("Vector(%g, %g, %g)", t.X, t.Y, t.Z)
	default:
		return fmt.Sprintf("Tuple(%g, %g, %g, %g)", t.X, t.Y, t.Z, t.W)
	}
}
