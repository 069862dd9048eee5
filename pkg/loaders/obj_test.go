package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

func TestParseOBJ_IgnoresUnknownLines(t *testing.T) {
	src := `There was a young lady named Bright
who traveled much faster than light.
She set out one day
in a relative way,
and came back the previous night.
`
	data, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if data.Ignored != 5 {
		t.Errorf("Expected 5 ignored lines, got %d", data.Ignored)
	}
}

func TestParseOBJ_Vertices(t *testing.T) {
	src := `v -1 1 0
v -1.0000 0.5000 0.0000
v 1 0 0
v 1 1 0
`
	data, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	expected := []core.Tuple{
		core.Point(-1, 1, 0), core.Point(-1, 0.5, 0), core.Point(1, 0, 0), core.Point(1, 1, 0),
	}
	if len(data.Vertices) != len(expected) {
		t.Fatalf("Expected %d vertices, got %d", len(expected), len(data.Vertices))
	}
	for i, v := range expected {
		if !data.Vertices[i].Equal(v) {
			t.Errorf("Vertex %d: expected %v, got %v", i+1, v, data.Vertices[i])
		}
	}
}

func TestParseOBJ_Triangles(t *testing.T) {
	src := `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0

f 1 2 3
f 1 3 4
`
	data, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(data.Faces) != 2 {
		t.Fatalf("Expected 2 faces, got %d", len(data.Faces))
	}
	checkTriangle(t, data.Faces[0], data.Vertices[0], data.Vertices[1], data.Vertices[2])
	checkTriangle(t, data.Faces[1], data.Vertices[0], data.Vertices[2], data.Vertices[3])
}

func TestParseOBJ_Polygon(t *testing.T) {
	src := `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0
v 0 2 0

f 1 2 3 4 5
`
	data, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(data.Faces) != 3 {
		t.Fatalf("Expected 3 triangles, got %d", len(data.Faces))
	}
	v := data.Vertices
	checkTriangle(t, data.Faces[0], v[0], v[1], v[2])
	checkTriangle(t, data.Faces[1], v[0], v[2], v[3])
	checkTriangle(t, data.Faces[2], v[0], v[3], v[4])
}

func TestParseOBJ_NamedGroups(t *testing.T) {
	src := `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0

g FirstGroup
f 1 2 3
g SecondGroup
f 1 3 4
`
	data, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(data.Faces) != 0 {
		t.Errorf("Expected no ungrouped faces, got %d", len(data.Faces))
	}
	if len(data.GroupOrder) != 2 || data.GroupOrder[0] != "FirstGroup" || data.GroupOrder[1] != "SecondGroup" {
		t.Fatalf("Unexpected group order %v", data.GroupOrder)
	}
	checkTriangle(t, data.Groups["FirstGroup"].Children()[0], data.Vertices[0], data.Vertices[1], data.Vertices[2])
	checkTriangle(t, data.Groups["SecondGroup"].Children()[0], data.Vertices[0], data.Vertices[2], data.Vertices[3])

	root := data.ToGroup()
	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("Expected 2 children in root, got %d", len(children))
	}
	if children[0] != geometry.Shape(data.Groups["FirstGroup"]) || children[1] != geometry.Shape(data.Groups["SecondGroup"]) {
		t.Error("Expected named groups as children in file order")
	}
}

func TestParseOBJ_Normals(t *testing.T) {
	src := `vn 0 0 1
vn 0.707 0 -0.707
vn 1 2 3
`
	data, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	expected := []core.Tuple{core.Vector(0, 0, 1), core.Vector(0.707, 0, -0.707), core.Vector(1, 2, 3)}
	for i, n := range expected {
		if !data.Normals[i].Equal(n) {
			t.Errorf("Normal %d: expected %v, got %v", i+1, n, data.Normals[i])
		}
	}
}

func TestParseOBJ_FacesWithNormals(t *testing.T) {
	src := `v 0 1 0
v -1 0 0
v 1 0 0

vn -1 0 0
vn 1 0 0
vn 0 1 0

f 1//3 2//1 3//2
f 1/0/3 2/102/1 3/14/2
`
	data, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(data.Faces) != 2 {
		t.Fatalf("Expected 2 faces, got %d", len(data.Faces))
	}
	for i, f := range data.Faces {
		st, ok := f.(*geometry.SmoothTriangle)
		if !ok {
			t.Fatalf("Face %d: expected smooth triangle, got %T", i, f)
		}
		if !st.P1.Equal(data.Vertices[0]) || !st.P2.Equal(data.Vertices[1]) || !st.P3.Equal(data.Vertices[2]) {
			t.Errorf("Face %d: unexpected points", i)
		}
		if !st.N1.Equal(data.Normals[2]) || !st.N2.Equal(data.Normals[0]) || !st.N3.Equal(data.Normals[1]) {
			t.Errorf("Face %d: unexpected normals", i)
		}
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected error
	}{
		{"vertex with two values", "v 1 2\n", ErrInvalidVertex},
		{"vertex with bad number", "v 1 x 3\n", ErrInvalidVertex},
		{"normal with four values", "vn 1 2 3 4\n", ErrInvalidVertex},
		{"face with two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrInvalidFace},
		{"face index zero", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrInvalidFace},
		{"face index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ErrInvalidFace},
		{"face normal missing", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n", ErrInvalidFace},
		{"face bad index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a b c\n", ErrInvalidFace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestParseOBJ_SkipsDegenerateFaces(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 2 0 0
v 0 1 0
f 1 2 3
f 1 2 4
`
	data, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(data.Faces) != 1 || data.Skipped != 1 {
		t.Errorf("Expected 1 face and 1 skipped, got %d and %d", len(data.Faces), data.Skipped)
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("# triangle\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if data.Ignored != 1 || len(data.Faces) != 1 {
		t.Errorf("Expected 1 ignored line and 1 face, got %d and %d", data.Ignored, len(data.Faces))
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func checkTriangle(t *testing.T, s geometry.Shape, p1, p2, p3 core.Tuple) {
	t.Helper()
	tri, ok := s.(*geometry.Triangle)
	if !ok {
		t.Fatalf("Expected *geometry.Triangle, got %T", s)
	}
	if !tri.P1.Equal(p1) || !tri.P2.Equal(p2) || !tri.P3.Equal(p3) {
		t.Errorf("Expected triangle %v %v %v, got %v %v %v", p1, p2, p3, tri.P1, tri.P2, tri.P3)
	}
}
