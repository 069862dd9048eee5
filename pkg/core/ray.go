package core

// Ray represents a ray with an origin point and a direction vector
type Ray struct {
	Origin    Tuple
	Direction Tuple
}

// NewRay creates a new ray
func NewRay(origin, direction Tuple) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Position returns the point at parameter t along the ray
func (r Ray) Position(t float64) Tuple {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Transform returns the ray with origin and direction multiplied by m.
// The direction is not renormalized, so t values stay comparable.
func (r Ray) Transform(m Matrix) Ray {
	return Ray{Origin: m.MulTuple(r.Origin), Direction: m.MulTuple(r.Direction)}
}
