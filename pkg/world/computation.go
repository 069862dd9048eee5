package world

import (
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Computation is the shading frame at a single hit
type Computation struct {
	T      float64
	Object geometry.Shape

	Point      core.Tuple
	OverPoint  core.Tuple // Nudged off the surface toward the eye, for shadow and reflection rays
	UnderPoint core.Tuple // Nudged below the surface, for refraction rays
	Eye        core.Tuple
	Normal     core.Tuple // Always faces the eye
	Reflect    core.Tuple
	Inside     bool // The ray started inside the object

	N1, N2 float64 // Refractive indices of the media being left and entered
}

// PrepareComputations builds the shading frame for hit. xs is the full
// sorted intersection list of the ray, used to work out which media the ray
// passes between; it may be nil when refraction does not matter.
func PrepareComputations(hit geometry.Intersection, ray core.Ray, xs geometry.Intersections) Computation {
	comps := Computation{
		T:      hit.T,
		Object: hit.Shape,
		Point:  ray.Position(hit.T),
		Eye:    ray.Direction.Negate(),
	}

	comps.Normal = geometry.NormalAt(hit.Shape, comps.Point, &hit)
	if comps.Normal.Dot(comps.Eye) < 0 {
		comps.Inside = true
		comps.Normal = comps.Normal.Negate()
	}

	comps.Reflect = ray.Direction.Reflect(comps.Normal)
	nudge := comps.Normal.Multiply(core.Epsilon)
	comps.OverPoint = comps.Point.Add(nudge)
	comps.UnderPoint = comps.Point.Subtract(nudge)

	if xs == nil {
		xs = geometry.Intersections{hit}
	}
	comps.N1, comps.N2 = refractiveIndices(hit, xs)
	return comps
}

// refractiveIndices replays the intersections up to hit, tracking the
// objects the ray is inside, and returns the index of the medium on each
// side of the hit
func refractiveIndices(hit geometry.Intersection, xs geometry.Intersections) (n1, n2 float64) {
	n1, n2 = material.IndexVacuum, material.IndexVacuum
	var containers []geometry.Shape

	// Entries are compared by value, so the replay stops at the first entry
	// equal to hit. Duplicates with the same t and shape come from tangent
	// hits, and Hit returns the first of them, which is the entry itself.

	for _, x := range xs {
		if x == hit {
			n1 = topIndex(containers)
		}

		if i := slices.Index(containers, x.Shape); i >= 0 {
			containers = slices.Delete(containers, i, i+1)
		} else {
			containers = append(containers, x.Shape)
		}

		if x == hit {
			n2 = topIndex(containers)
			break
		}
	}
	return n1, n2
}

func topIndex(containers []geometry.Shape) float64 {
	if len(containers) == 0 {
		return material.IndexVacuum
	}
	return containers[len(containers)-1].Material().RefractiveIndex
}

// Schlick returns the fraction of light reflected at the hit
func (c Computation) Schlick() float64 {
	return material.Schlick(c.Eye.Dot(c.Normal), c.N1, c.N2)
}
