package loaders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

const defaultWorldJSON = `{
  "name": "two spheres",
  "lights": [{"position": [-10, 10, -10], "intensity": "#ffffff"}],
  "materials": {
    "green": {"color": [0.8, 1.0, 0.6], "diffuse": 0.7, "specular": 0.2}
  },
  "objects": [
    {"type": "sphere", "material": "green"},
    {"type": "sphere", "transform": [["scale", 0.5, 0.5, 0.5]]}
  ]
}`

func TestParseScene_DefaultWorld(t *testing.T) {
	desc, err := ParseScene(strings.NewReader(defaultWorldJSON), "")
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	if desc.Name != "two spheres" {
		t.Errorf("Expected name 'two spheres', got %q", desc.Name)
	}
	if len(desc.World.Objects) != 2 || len(desc.World.Lights) != 1 {
		t.Fatalf("Expected 2 objects and 1 light, got %d and %d", len(desc.World.Objects), len(desc.World.Lights))
	}
	if !desc.World.Lights[0].Intensity().Equal(core.White) {
		t.Errorf("Expected white light, got %v", desc.World.Lights[0].Intensity())
	}

	// Shading matches the hand-built default world
	ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
	got := desc.World.ColorAt(ray, world.DefaultMaxRecursion)
	expected := world.Default().ColorAt(ray, world.DefaultMaxRecursion)
	if !got.Equal(expected) || !got.Equal(core.NewColor(0.38066, 0.47583, 0.2855)) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestParseScene_CameraAndWorldSettings(t *testing.T) {
	src := `{
  "camera": {"width": 64, "height": 32, "fov": 1.2, "from": [0, 2, -8]},
  "background": "#ff0000",
  "maxRecursion": 2
}`
	desc, err := ParseScene(strings.NewReader(src), "")
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	cam := desc.Camera
	if cam.Width != 64 || cam.Height != 32 || cam.FieldOfView != 1.2 {
		t.Errorf("Unexpected camera size %+v", cam)
	}
	if !cam.From.Equal(core.Point(0, 2, -8)) {
		t.Errorf("Expected from (0, 2, -8), got %v", cam.From)
	}
	// Unset fields keep the defaults
	if !cam.Up.Equal(core.Vector(0, 1, 0)) || !cam.To.Equal(core.Point(0, 1, 0)) {
		t.Errorf("Expected default up and to, got %v and %v", cam.Up, cam.To)
	}
	if !desc.World.Background.Equal(core.NewColor(1, 0, 0)) {
		t.Errorf("Expected red background, got %v", desc.World.Background)
	}
	if desc.World.MaxRecursion != 2 {
		t.Errorf("Expected max recursion 2, got %d", desc.World.MaxRecursion)
	}
}

func TestParseScene_MaterialsAndPatterns(t *testing.T) {
	src := `{
  "materials": {
    "base": {"ambient": 0.3, "reflective": 0.5},
    "mirror": {"extends": "base", "reflective": 0.9, "shininess": 50},
    "floor": {"pattern": {"type": "checkers", "colors": ["#ffffff", [0, 0, 0]], "transform": [["scale", 0.5, 0.5, 0.5]]}}
  },
  "objects": [
    {"type": "plane", "material": "floor"},
    {"type": "cube", "material": "mirror"},
    {"type": "sphere", "material": {"extends": "mirror", "transparency": 1, "refractiveIndex": 1.5}},
    {"type": "sphere", "material": {"pattern": {"type": "stripes", "patterns": [
      {"type": "solid", "colors": [[1, 0, 0]]},
      {"type": "noise", "colors": [[0, 0, 1], [0, 1, 0]], "seed": 7}
    ]}}}
  ]
}`
	desc, err := ParseScene(strings.NewReader(src), "")
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	objs := desc.World.Objects

	floor := objs[0].Material()
	checkers, ok := floor.Pattern.(*material.Checkers)
	if !ok {
		t.Fatalf("Expected checkers pattern, got %T", floor.Pattern)
	}
	if !checkers.Transform().Matrix().Equal(core.Scaling(0.5, 0.5, 0.5)) {
		t.Error("Expected pattern scaled by 0.5")
	}

	mirror := objs[1].Material()
	if mirror.Ambient != 0.3 || mirror.Reflective != 0.9 || mirror.Shininess != 50 || mirror.Diffuse != 0.9 {
		t.Errorf("Unexpected extended material %+v", mirror)
	}

	glass := objs[2].Material()
	if glass.Reflective != 0.9 || glass.Transparency != 1 || glass.RefractiveIndex != 1.5 {
		t.Errorf("Unexpected inline material %+v", glass)
	}
	if mirror.Transparency != 0 {
		t.Error("Extending a material must not modify it")
	}

	stripes, ok := objs[3].Material().Pattern.(*material.Stripes)
	if !ok {
		t.Fatalf("Expected stripes pattern, got %T", objs[3].Material().Pattern)
	}
	if _, ok := stripes.B.(*material.Noise); !ok {
		t.Errorf("Expected nested noise pattern, got %T", stripes.B)
	}
}

func TestParseScene_GroupsAndCSG(t *testing.T) {
	src := `{
  "materials": {"red": {"color": [1, 0, 0]}, "blue": {"color": [0, 0, 1]}},
  "objects": [
    {"type": "group", "material": "red", "transform": [["translate", 0, 1, 0]], "optimize": 1, "children": [
      {"type": "sphere", "transform": [["translate", -2, 0, 0]]},
      {"type": "sphere", "transform": [["translate", 2, 0, 0]], "material": "blue"},
      {"type": "cylinder", "min": 0, "max": 1, "closed": true},
      {"type": "triangle", "points": [[0, 1, 0], [-1, 0, 0], [1, 0, 0]]}
    ]},
    {"type": "csg", "operation": "difference",
      "left": {"type": "cube"},
      "right": {"type": "sphere", "transform": [["scale", 1.3, 1.3, 1.3]]}}
  ]
}`
	desc, err := ParseScene(strings.NewReader(src), "")
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	g, ok := desc.World.Objects[0].(*geometry.Group)
	if !ok {
		t.Fatalf("Expected group, got %T", desc.World.Objects[0])
	}
	if !g.Transform().Matrix().Equal(core.Translation(0, 1, 0)) {
		t.Error("Expected group translated by (0, 1, 0)")
	}
	if g.Stats().Primitives != 4 {
		t.Errorf("Expected 4 primitives after optimizing, got %d", g.Stats().Primitives)
	}

	red, blue := 0, 0
	var visit func(s geometry.Shape)
	visit = func(s geometry.Shape) {
		if child, ok := s.(*geometry.Group); ok {
			for _, c := range child.Children() {
				visit(c)
			}
			return
		}
		switch s.Material().Color {
		case core.NewColor(1, 0, 0):
			red++
		case core.NewColor(0, 0, 1):
			blue++
		}
	}
	visit(g)
	if red != 3 || blue != 1 {
		t.Errorf("Expected 3 red and 1 blue children, got %d and %d", red, blue)
	}

	csg, ok := desc.World.Objects[1].(*geometry.CSG)
	if !ok {
		t.Fatalf("Expected CSG, got %T", desc.World.Objects[1])
	}
	if csg.Operation != geometry.OpDifference {
		t.Errorf("Expected difference, got %v", csg.Operation)
	}
	// The sphere removes the middle of the cube's faces
	ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
	if xs := geometry.Intersect(csg, ray); len(xs) != 0 {
		t.Errorf("Expected the ray to pass through the hollow, got %d hits", len(xs))
	}
}

func TestLoadScene_MeshReference(t *testing.T) {
	dir := t.TempDir()
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3\nf 2 4 3\n"
	if err := os.WriteFile(filepath.Join(dir, "quad.obj"), []byte(obj), 0o644); err != nil {
		t.Fatal(err)
	}
	scene := `{"objects": [{"type": "mesh", "file": "quad.obj", "material": {"color": [0, 1, 0]}}]}`
	path := filepath.Join(dir, "quad_scene.json")
	if err := os.WriteFile(path, []byte(scene), 0o644); err != nil {
		t.Fatal(err)
	}

	desc, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if desc.Name != "quad_scene" {
		t.Errorf("Expected name from file, got %q", desc.Name)
	}
	g := desc.World.Objects[0].(*geometry.Group)
	if len(g.Children()) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(g.Children()))
	}
	if !g.Children()[1].Material().Color.Equal(core.NewColor(0, 1, 0)) {
		t.Error("Expected mesh material to reach its triangles")
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"malformed json", `{"objects": [`},
		{"unknown field", `{"object": []}`},
		{"unknown shape", `{"objects": [{"type": "torus"}]}`},
		{"unknown material", `{"objects": [{"type": "sphere", "material": "gold"}]}`},
		{"material cycle", `{"materials": {"a": {"extends": "b"}, "b": {"extends": "a"}}, "objects": [{"type": "sphere", "material": "a"}]}`},
		{"bad transform name", `{"objects": [{"type": "sphere", "transform": [["spin", 1]]}]}`},
		{"bad transform arity", `{"objects": [{"type": "sphere", "transform": [["translate", 1, 2]]}]}`},
		{"singular transform", `{"objects": [{"type": "sphere", "transform": [["scale", 0, 1, 1]]}]}`},
		{"bad csg operation", `{"objects": [{"type": "csg", "operation": "xor", "left": {"type": "cube"}, "right": {"type": "cube"}}]}`},
		{"csg missing operand", `{"objects": [{"type": "csg", "operation": "union", "left": {"type": "cube"}}]}`},
		{"degenerate triangle", `{"objects": [{"type": "triangle", "points": [[0, 0, 0], [1, 0, 0], [2, 0, 0]]}]}`},
		{"pattern needs colors", `{"objects": [{"type": "sphere", "material": {"pattern": {"type": "rings", "colors": [[1, 1, 1]]}}}]}`},
		{"unknown pattern", `{"objects": [{"type": "sphere", "material": {"pattern": {"type": "plaid"}}}]}`},
		{"mesh format", `{"objects": [{"type": "mesh", "file": "model.stl"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.src), "")
			if !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestColorJSON(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected core.Color
	}{
		{"array", `[0.25, 0.5, 1]`, core.NewColor(0.25, 0.5, 1)},
		{"hex white", `"#ffffff"`, core.White},
		{"hex black", `"#000000"`, core.Black},
		{"hex mid grey is linearized", `"#808080"`, core.NewColor(0.21586, 0.21586, 0.21586)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c colorJSON
			if err := c.UnmarshalJSON([]byte(tt.src)); err != nil {
				t.Fatalf("UnmarshalJSON failed: %v", err)
			}
			if !core.Color(c).Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, core.Color(c))
			}
		})
	}

	var c colorJSON
	if err := c.UnmarshalJSON([]byte(`"red"`)); err == nil {
		t.Error("Expected error for a non-hex string")
	}
}

func TestTransformJSON_Order(t *testing.T) {
	tr := transformJSON{{"rotate-x", math.Pi / 2}, {"scale", 5.0, 5.0, 5.0}, {"translate", 10.0, 5.0, 7.0}}
	m, err := tr.matrix()
	if err != nil {
		t.Fatalf("matrix failed: %v", err)
	}
	got := m.MulTuple(core.Point(1, 0, 1))
	if !got.Equal(core.Point(15, 0, 7)) {
		t.Errorf("Expected (15, 0, 7), got %v", got)
	}
}
