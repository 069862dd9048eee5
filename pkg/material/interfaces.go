package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// ObjectSpace converts world-space points into the local space of the shape
// being shaded. Shapes implement it by walking up their parent chain.
type ObjectSpace interface {
	WorldToObject(point core.Tuple) core.Tuple
}

// Pattern provides spatially-varying colors for materials
type Pattern interface {
	// PatternAt returns the color at a point already in pattern space
	PatternAt(point core.Tuple) core.Color

	// Transform places the pattern relative to the object it is painted on
	Transform() core.Transform
}
