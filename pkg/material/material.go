package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Material describes the Phong surface properties of a shape along with
// its reflective and refractive behaviour
type Material struct {
	Color   core.Color
	Pattern Pattern // Overrides Color when set

	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64

	Reflective      float64 // 0 is matte, 1 is a perfect mirror
	Transparency    float64 // 0 is opaque
	RefractiveIndex float64 // 1 is vacuum
}

// Common refractive indices
const (
	IndexVacuum  = 1.0
	IndexAir     = 1.00029
	IndexWater   = 1.333
	IndexGlass   = 1.52
	IndexDiamond = 2.417
)

// DefaultMaterial returns a white, slightly shiny, opaque material
func DefaultMaterial() *Material {
	return &Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		RefractiveIndex: IndexVacuum,
	}
}

// NewGlass returns a clear glass material
func NewGlass() *Material {
	m := DefaultMaterial()
	m.Color = core.Black
	m.Diffuse = 0.1
	m.Specular = 1
	m.Shininess = 300
	m.Reflective = 1
	m.Transparency = 1
	m.RefractiveIndex = IndexGlass
	return m
}

// ColorAt returns the surface color at a world-space point on obj
func (m *Material) ColorAt(obj ObjectSpace, worldPoint core.Tuple) core.Color {
	if m.Pattern == nil {
		return m.Color
	}
	return ColorAtObject(m.Pattern, obj, worldPoint)
}

// Lighting computes the Phong shading of a point lit by a single light.
// Diffuse and specular terms are dropped when the point is in shadow or the
// light is behind the surface. The result is clamped to [0, 1].
func (m *Material) Lighting(obj ObjectSpace, light lights.Light, point, eye, normal core.Tuple, inShadow bool) core.Color {
	effective := m.ColorAt(obj, point).Hadamard(light.Intensity())
	ambient := effective.Multiply(m.Ambient)

	lightv := light.Position().Subtract(point).Normalize()
	lightDotNormal := lightv.Dot(normal)
	if inShadow || lightDotNormal < 0 {
		return ambient.Clamp()
	}

	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black
	reflectv := lightv.Negate().Reflect(normal)
	if reflectDotEye := reflectv.Dot(eye); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity().Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular).Clamp()
}
