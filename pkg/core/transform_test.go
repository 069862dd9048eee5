package core

import (
	"math"
	"testing"
)

func TestTransform_Factories(t *testing.T) {
	tests := []struct {
		name     string
		m        Matrix
		in       Tuple
		expected Tuple
	}{
		{"translate point", Translation(5, -3, 2), Point(-3, 4, 5), Point(2, 1, 7)},
		{"translate vector is a no-op", Translation(5, -3, 2), Vector(-3, 4, 5), Vector(-3, 4, 5)},
		{"scale point", Scaling(2, 3, 4), Point(-4, 6, 8), Point(-8, 18, 32)},
		{"reflection by scaling", Scaling(-1, 1, 1), Point(2, 3, 4), Point(-2, 3, 4)},
		{"rotate x", RotationX(math.Pi / 4), Point(0, 1, 0), Point(0, math.Sqrt2/2, math.Sqrt2/2)},
		{"rotate y", RotationY(math.Pi / 4), Point(0, 0, 1), Point(math.Sqrt2/2, 0, math.Sqrt2/2)},
		{"rotate z", RotationZ(math.Pi / 2), Point(0, 1, 0), Point(-1, 0, 0)},
		{"shear x by y", Shearing(1, 0, 0, 0, 0, 0), Point(2, 3, 4), Point(5, 3, 4)},
		{"shear z by y", Shearing(0, 0, 0, 0, 0, 1), Point(2, 3, 4), Point(2, 3, 7)},
		{"chain applies in order", Chain(RotationX(math.Pi/2), Scaling(5, 5, 5), Translation(10, 5, 7)), Point(1, 0, 1), Point(15, 0, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MulTuple(tt.in); !got.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTransform_CachedInverse(t *testing.T) {
	m := Chain(Scaling(1, 0.5, 1), RotationZ(math.Pi/5))
	tr := NewTransform(m)

	if !tr.Inverse().Equal(m.Inverse()) {
		t.Error("Cached inverse does not match the matrix inverse")
	}
	if !tr.InverseTranspose().Equal(m.Inverse().Transpose()) {
		t.Error("Cached inverse transpose does not match")
	}
	if !tr.Matrix().Mul(tr.Inverse()).Equal(Identity()) {
		t.Error("Matrix times cached inverse should be identity")
	}
}

func TestViewTransform(t *testing.T) {
	tests := []struct {
		name     string
		from     Tuple
		to       Tuple
		up       Tuple
		expected Matrix
	}{
		{
			name:     "default orientation",
			from:     Point(0, 0, 0),
			to:       Point(0, 0, -1),
			up:       Vector(0, 1, 0),
			expected: Identity(),
		},
		{
			name:     "looking in positive z",
			from:     Point(0, 0, 0),
			to:       Point(0, 0, 1),
			up:       Vector(0, 1, 0),
			expected: Scaling(-1, 1, -1),
		},
		{
			name:     "moves the world",
			from:     Point(0, 0, 8),
			to:       Point(0, 0, 0),
			up:       Vector(0, 1, 0),
			expected: Translation(0, 0, -8),
		},
		{
			name: "arbitrary",
			from: Point(1, 3, 2),
			to:   Point(4, -2, 8),
			up:   Vector(1, 1, 0),
			expected: NewMatrix([4][4]float64{
				{-0.50709, 0.50709, 0.67612, -2.36643},
				{0.76772, 0.60609, 0.12122, -2.82843},
				{-0.35857, 0.59761, -0.71714, 0},
				{0, 0, 0, 1},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ViewTransform(tt.from, tt.to, tt.up); !got.Equal(tt.expected) {
				t.Errorf("Expected\n%v got\n%v", tt.expected, got)
			}
		})
	}
}

func TestRay_PositionAndTransform(t *testing.T) {
	r := NewRay(Point(2, 3, 4), Vector(1, 0, 0))
	if got := r.Position(2.5); !got.Equal(Point(4.5, 3, 4)) {
		t.Errorf("Expected (4.5, 3, 4), got %v", got)
	}
	if got := r.Position(-1); !got.Equal(Point(1, 3, 4)) {
		t.Errorf("Expected (1, 3, 4), got %v", got)
	}

	r = NewRay(Point(1, 2, 3), Vector(0, 1, 0))
	moved := r.Transform(Translation(3, 4, 5))
	if !moved.Origin.Equal(Point(4, 6, 8)) || !moved.Direction.Equal(Vector(0, 1, 0)) {
		t.Errorf("Translated ray: got %v %v", moved.Origin, moved.Direction)
	}
	scaled := r.Transform(Scaling(2, 3, 4))
	if !scaled.Origin.Equal(Point(2, 6, 12)) || !scaled.Direction.Equal(Vector(0, 3, 0)) {
		t.Errorf("Scaled ray: got %v %v", scaled.Origin, scaled.Direction)
	}
}
