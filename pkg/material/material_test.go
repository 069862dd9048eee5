package material

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// objectSpace is a stand-in shape with a single transform
type objectSpace struct {
	inverse core.Matrix
}

func newObjectSpace(m core.Matrix) objectSpace {
	return objectSpace{inverse: m.Inverse()}
}

func (o objectSpace) WorldToObject(p core.Tuple) core.Tuple {
	return o.inverse.MulTuple(p)
}

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()
	if !m.Color.Equal(core.White) || m.Ambient != 0.1 || m.Diffuse != 0.9 ||
		m.Specular != 0.9 || m.Shininess != 200 {
		t.Errorf("Unexpected Phong defaults: %+v", m)
	}
	if m.Reflective != 0 || m.Transparency != 0 || m.RefractiveIndex != 1 {
		t.Errorf("Unexpected reflect/refract defaults: %+v", m)
	}
}

func TestMaterial_Lighting(t *testing.T) {
	position := core.Point(0, 0, 0)
	obj := newObjectSpace(core.Identity())
	s2 := math.Sqrt2 / 2

	tests := []struct {
		name     string
		eye      core.Tuple
		light    core.Tuple
		inShadow bool
		expected float64
	}{
		{"eye between light and surface", core.Vector(0, 0, -1), core.Point(0, 0, -10), false, 1.0},
		{"eye offset 45 degrees", core.Vector(0, s2, -s2), core.Point(0, 0, -10), false, 1.0},
		{"light offset 45 degrees", core.Vector(0, 0, -1), core.Point(0, 10, -10), false, 0.7364},
		{"eye in the reflection path", core.Vector(0, -s2, -s2), core.Point(0, 10, -10), false, 1.0},
		{"light behind the surface", core.Vector(0, 0, -1), core.Point(0, 0, 10), false, 0.1},
		{"surface in shadow", core.Vector(0, 0, -1), core.Point(0, 0, -10), true, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMaterial()
			light := lights.NewPointLight(tt.light, core.White)
			got := m.Lighting(obj, light, position, tt.eye, core.Vector(0, 0, -1), tt.inShadow)
			expected := core.NewColor(tt.expected, tt.expected, tt.expected)
			if !got.Equal(expected) {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestMaterial_LightingWithPattern(t *testing.T) {
	m := DefaultMaterial()
	m.Pattern = NewStripes(NewSolid(core.White), NewSolid(core.Black))
	m.Ambient, m.Diffuse, m.Specular = 1, 0, 0

	obj := newObjectSpace(core.Identity())
	eye := core.Vector(0, 0, -1)
	normal := core.Vector(0, 0, -1)
	light := lights.NewPointLight(core.Point(0, 0, -10), core.White)

	if c := m.Lighting(obj, light, core.Point(0.9, 0, 0), eye, normal, false); !c.Equal(core.White) {
		t.Errorf("Expected white at x=0.9, got %v", c)
	}
	if c := m.Lighting(obj, light, core.Point(1.1, 0, 0), eye, normal, false); !c.Equal(core.Black) {
		t.Errorf("Expected black at x=1.1, got %v", c)
	}
}

func TestSchlick(t *testing.T) {
	tests := []struct {
		name     string
		cos      float64
		n1, n2   float64
		expected float64
	}{
		{"total internal reflection", math.Sqrt2 / 2, 1.5, 1.0, 1.0},
		{"perpendicular", 1, 1.0, 1.5, 0.04},
		{"oblique with n2 > n1", 0.5, 1.0, 1.5, 0.07},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Schlick(tt.cos, tt.n1, tt.n2); !core.ApproxEqual(got, tt.expected) {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestRefract(t *testing.T) {
	normal := core.Vector(0, 1, 0)

	// Straight through: no bending at normal incidence
	dir, ok := Refract(core.Vector(0, 1, 0), normal, 1/1.5)
	if !ok || !dir.Equal(core.Vector(0, -1, 0)) {
		t.Errorf("Expected (0, -1, 0), got %v ok=%v", dir, ok)
	}

	// Grazing from a dense medium
	eye := core.Vector(0, 0.1, -1).Normalize()
	if _, ok := Refract(eye, normal, 1.5); ok {
		t.Error("Expected total internal reflection")
	}
}
