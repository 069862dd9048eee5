package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light is a source that illuminates surfaces for Phong shading and casts
// shadows from a single position
type Light interface {
	Type() LightType

	// Position is the world-space point that shadow rays are aimed at
	Position() core.Tuple

	// Intensity is the color and brightness of the light
	Intensity() core.Color
}
