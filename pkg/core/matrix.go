package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is a 4x4 transformation matrix. Values are immutable: every
// operation returns a new Matrix.
type Matrix struct {
	m mgl64.Mat4
}

// Identity returns the 4x4 identity matrix
func Identity() Matrix {
	return Matrix{m: mgl64.Ident4()}
}

// NewMatrix builds a matrix from row-major values
func NewMatrix(rows [4][4]float64) Matrix {
	return Matrix{m: mgl64.Mat4FromRows(
		mgl64.Vec4(rows[0]),
		mgl64.Vec4(rows[1]),
		mgl64.Vec4(rows[2]),
		mgl64.Vec4(rows[3]),
	)}
}

// FromMat4 wraps a column-major mathgl matrix
func FromMat4(m mgl64.Mat4) Matrix {
	return Matrix{m: m}
}

// At returns the element at (row, col)
func (a Matrix) At(row, col int) float64 {
	return a.m.At(row, col)
}

// Rows returns the matrix as row-major values
func (a Matrix) Rows() [4][4]float64 {
	var rows [4][4]float64
	for r := range 4 {
		for c := range 4 {
			rows[r][c] = a.m.At(r, c)
		}
	}
	return rows
}

// Mul returns the matrix product a * b
func (a Matrix) Mul(b Matrix) Matrix {
	return Matrix{m: a.m.Mul4(b.m)}
}

// MulTuple transforms a tuple. The resulting w retags the value as a
// point or vector.
func (a Matrix) MulTuple(t Tuple) Tuple {
	v := a.m.Mul4x1(mgl64.Vec4{t.X, t.Y, t.Z, t.W})
	return Tuple{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}

// Transpose returns the transposed matrix
func (a Matrix) Transpose() Matrix {
	return Matrix{m: a.m.Transpose()}
}

// Determinant returns the determinant of the matrix
func (a Matrix) Determinant() float64 {
	return a.m.Det()
}

// IsInvertible reports whether the determinant is distinguishable from zero,
// relative to the magnitude of the matrix elements
func (a Matrix) IsInvertible() bool {
	scale := 0.0
	for r := range 4 {
		for c := range 4 {
			scale = max(scale, math.Abs(a.m.At(r, c)))
		}
	}
	if scale == 0 {
		return false
	}
	tolerance := math.Pow(Epsilon*scale, 4)
	return math.Abs(a.Determinant()) > tolerance
}

// Inverse returns the inverse matrix. Inverting a singular matrix is a
// programming error and panics.
func (a Matrix) Inverse() Matrix {
	if !a.IsInvertible() {
		panic(fmt.Sprintf("core: matrix is not invertible:\n%s", a))
	}
	return Matrix{m: a.m.Inv()}
}

// Equal reports whether every element differs by less than Epsilon
func (a Matrix) Equal(b Matrix) bool {
	return a.m.ApproxEqualThreshold(b.m, Epsilon)
}

func (a Matrix) String() string {
	var sb strings.Builder
	for r := range 4 {
		sb.WriteString("|")
		for c := range 4 {
			fmt.Fprintf(&sb, " %9.5f", a.m.At(r, c))
		}
		sb.WriteString(" |\n")
	}
	return sb.String()
}
