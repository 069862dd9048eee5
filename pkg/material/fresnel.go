package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Schlick approximates the Fresnel reflectance for light travelling from a
// medium with index n1 into one with index n2. cos is the cosine of the
// angle between the eye and surface normal. Total internal reflection
// returns 1.
func Schlick(cos, n1, n2 float64) float64 {
	if n1 > n2 {
		ratio := n1 / n2
		sin2t := ratio * ratio * (1 - cos*cos)
		if sin2t > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2t)
	}

	r0 := (n1 - n2) / (n1 + n2)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}

// Refract returns the direction of a ray refracted through a surface, or
// false on total internal reflection. eye points away from the surface,
// normal is on the eye's side, and the ratio is n1/n2.
func Refract(eye, normal core.Tuple, ratio float64) (core.Tuple, bool) {
	cosI := eye.Dot(normal)
	sin2t := ratio * ratio * (1 - cosI*cosI)
	if sin2t > 1 {
		return core.Tuple{}, false
	}
	cosT := math.Sqrt(1 - sin2t)
	return normal.Multiply(ratio*cosI - cosT).Subtract(eye.Multiply(ratio)), true
}
