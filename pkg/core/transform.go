package core

import "github.com/go-gl/mathgl/mgl64"

// Transform pairs a matrix with its inverse and inverse transpose. All three
// are computed together when the Transform is built, so they never disagree.
type Transform struct {
	matrix           Matrix
	inverse          Matrix
	inverseTranspose Matrix
}

// NewTransform builds a Transform from a forward matrix. A singular matrix
// panics.
func NewTransform(m Matrix) Transform {
	inv := m.Inverse()
	return Transform{
		matrix:           m,
		inverse:          inv,
		inverseTranspose: inv.Transpose(),
	}
}

// IdentityTransform returns the identity Transform
func IdentityTransform() Transform {
	id := Identity()
	return Transform{matrix: id, inverse: id, inverseTranspose: id}
}

// Matrix returns the forward (object-to-world) matrix
func (t Transform) Matrix() Matrix { return t.matrix }

// Inverse returns the cached inverse (world-to-object) matrix
func (t Transform) Inverse() Matrix { return t.inverse }

// InverseTranspose returns the cached transpose of the inverse, used for normals
func (t Transform) InverseTranspose() Matrix { return t.inverseTranspose }

// Translation returns a translation matrix
func Translation(x, y, z float64) Matrix {
	return FromMat4(mgl64.Translate3D(x, y, z))
}

// Scaling returns a scaling matrix
func Scaling(x, y, z float64) Matrix {
	return FromMat4(mgl64.Scale3D(x, y, z))
}

// RotationX returns a rotation around the x axis by r radians
func RotationX(r float64) Matrix {
	return FromMat4(mgl64.HomogRotate3DX(r))
}

// RotationY returns a rotation around the y axis by r radians
func RotationY(r float64) Matrix {
	return FromMat4(mgl64.HomogRotate3DY(r))
}

// RotationZ returns a rotation around the z axis by r radians
func RotationZ(r float64) Matrix {
	return FromMat4(mgl64.HomogRotate3DZ(r))
}

// Shearing returns a shearing matrix. Each argument moves one component in
// proportion to another, e.g. xy moves x in proportion to y.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	return NewMatrix([4][4]float64{
		{1, xy, xz, 0},
		{yx, 1, yz, 0},
		{zx, zy, 1, 0},
		{0, 0, 0, 1},
	})
}

// Chain composes transformations in the order they are applied, so
// Chain(a, b, c) == c * b * a
func Chain(ms ...Matrix) Matrix {
	result := Identity()
	for _, m := range ms {
		result = m.Mul(result)
	}
	return result
}

// ViewTransform orients the world relative to an eye at from looking at to
func ViewTransform(from, to, up Tuple) Matrix {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := NewMatrix([4][4]float64{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	})
	return orientation.Mul(Translation(-from.X, -from.Y, -from.Z))
}
