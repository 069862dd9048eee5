package world

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultMaxRecursion bounds how many reflection and refraction bounces a
// single camera ray may spawn
const DefaultMaxRecursion = 5

// World contains everything needed to shade a ray. It must not be modified
// once rendering starts; all methods are safe for concurrent use after that.
type World struct {
	Objects      []geometry.Shape
	Lights       []lights.Light
	MaxRecursion int        // Bounce budget for reflection and refraction
	Background   core.Color // Color returned for rays that hit nothing
}

// New creates an empty world with a black background
func New() *World {
	return &World{
		MaxRecursion: DefaultMaxRecursion,
		Background:   core.Black,
	}
}

// Default creates the standard two sphere test world: a unit sphere with a
// green tinted material enclosing a half-size white sphere, lit by a white
// light at (-10, 10, -10)
func Default() *World {
	outer := geometry.NewSphere()
	m := material.DefaultMaterial()
	m.Color = core.NewColor(0.8, 1.0, 0.6)
	m.Diffuse = 0.7
	m.Specular = 0.2
	outer.SetMaterial(m)

	inner := geometry.NewSphere()
	inner.SetTransform(core.Scaling(0.5, 0.5, 0.5))

	w := New()
	w.AddObject(outer, inner)
	w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))
	return w
}

// AddObject adds shapes to the world
func (w *World) AddObject(shapes ...geometry.Shape) {
	w.Objects = append(w.Objects, shapes...)
}

// AddLight adds lights to the world
func (w *World) AddLight(ls ...lights.Light) {
	w.Lights = append(w.Lights, ls...)
}

// Intersect returns every intersection of the ray with the world, sorted by t
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, obj := range w.Objects {
		xs = append(xs, geometry.Intersect(obj, ray)...)
	}
	xs.Sort()
	return xs
}

// IsShadowed reports whether anything lies between point and the light
func (w *World) IsShadowed(light lights.Light, point core.Tuple) bool {
	v := light.Position().Subtract(point)
	distance := v.Magnitude()
	if distance < core.Epsilon {
		return false
	}
	ray := core.NewRay(point, v.Normalize())

	hit, ok := w.Intersect(ray).Hit()
	return ok && hit.T < distance
}

// Trace returns the color seen along a camera ray using the world's full
// bounce budget
func (w *World) Trace(ray core.Ray) core.Color {
	return w.ColorAt(ray, w.MaxRecursion)
}

// ColorAt returns the color seen along a ray. remaining is the number of
// further bounces the ray may spawn.
func (w *World) ColorAt(ray core.Ray, remaining int) core.Color {
	xs := w.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return w.Background
	}
	return w.ShadeHit(PrepareComputations(hit, ray, xs), remaining)
}

// ShadeHit combines the direct lighting from every light with the reflected
// and refracted contributions at a hit. Surfaces that both reflect and
// refract weight the two by their Schlick reflectance.
func (w *World) ShadeHit(comps Computation, remaining int) core.Color {
	m := comps.Object.Material()

	surface := core.Black
	for _, light := range w.Lights {
		shadowed := w.IsShadowed(light, comps.OverPoint)
		surface = surface.Add(m.Lighting(comps.Object, light, comps.OverPoint, comps.Eye, comps.Normal, shadowed))
	}

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := comps.Schlick()
		return surface.Add(reflected.Multiply(reflectance)).Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor traces the mirror bounce at a hit, scaled by the material's
// reflectivity. It is black for non-reflective surfaces and once the bounce
// budget is spent.
func (w *World) ReflectedColor(comps Computation, remaining int) core.Color {
	reflective := comps.Object.Material().Reflective
	if reflective == 0 || remaining <= 0 {
		return core.Black
	}

	ray := core.NewRay(comps.OverPoint, comps.Reflect)
	return w.ColorAt(ray, remaining-1).Multiply(reflective)
}

// RefractedColor traces the ray bent through a transparent surface, scaled
// by the material's transparency. It is black for opaque surfaces, under
// total internal reflection and once the bounce budget is spent.
func (w *World) RefractedColor(comps Computation, remaining int) core.Color {
	transparency := comps.Object.Material().Transparency
	if transparency == 0 || remaining <= 0 {
		return core.Black
	}

	direction, ok := material.Refract(comps.Eye, comps.Normal, comps.N1/comps.N2)
	if !ok {
		return core.Black
	}

	ray := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAt(ray, remaining-1).Multiply(transparency)
}
