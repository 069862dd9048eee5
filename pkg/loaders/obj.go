package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

var (
	// ErrInvalidVertex is returned for a malformed v or vn record
	ErrInvalidVertex = errors.New("invalid vertex")
	// ErrInvalidFace is returned for a malformed f record or one that
	// references a missing vertex or normal
	ErrInvalidFace = errors.New("invalid face")
)

// OBJData holds the geometry read from a Wavefront OBJ file. Vertex and
// normal lists are zero-based; the file's indices are one-based.
type OBJData struct {
	Ignored  int // Lines that were not understood
	Vertices []core.Tuple
	Normals  []core.Tuple

	// Faces before any g record
	Faces []geometry.Shape
	// Named groups, in the order they first appear
	Groups     map[string]*geometry.Group
	GroupOrder []string

	// Degenerate faces that were dropped
	Skipped int
}

// LoadOBJ loads an OBJ file from disk
func LoadOBJ(filename string) (*OBJData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParseOBJ reads OBJ records: v, vn, f and g. Polygons are fan
// triangulated; faces that give a normal for every corner become smooth
// triangles. Anything else is counted in Ignored.
func ParseOBJ(r io.Reader) (*OBJData, error) {
	data := &OBJData{Groups: make(map[string]*geometry.Group)}
	current := ""

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "v":
			p, err := parseTriple(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrInvalidVertex, err)
			}
			data.Vertices = append(data.Vertices, core.Point(p[0], p[1], p[2]))

		case "vn":
			n, err := parseTriple(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrInvalidVertex, err)
			}
			data.Normals = append(data.Normals, core.Vector(n[0], n[1], n[2]))

		case "f":
			tris, err := data.parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			data.addFaces(current, tris)

		case "g":
			current = ""
			if len(fields) > 1 {
				current = fields[1]
			}

		default:
			data.Ignored++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	return data, nil
}

func parseTriple(params []string) ([3]float64, error) {
	var v [3]float64
	if len(params) != 3 {
		return v, fmt.Errorf("expected 3 values, got %d", len(params))
	}
	for i, p := range params {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// parseFace turns the corners of one f record into triangles
func (d *OBJData) parseFace(params []string) ([]geometry.Shape, error) {
	if len(params) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 corners, got %d", ErrInvalidFace, len(params))
	}

	verts := make([]int, len(params))
	norms := make([]int, 0, len(params))
	for i, p := range params {
		parts := strings.Split(p, "/")

		v, err := d.resolve(parts[0], len(d.Vertices))
		if err != nil {
			return nil, err
		}
		verts[i] = v

		// v/vt/vn and v//vn carry a normal in the third slot
		if len(parts) == 3 && parts[2] != "" {
			n, err := d.resolve(parts[2], len(d.Normals))
			if err != nil {
				return nil, err
			}
			norms = append(norms, n)
		}
	}
	smooth := len(norms) == len(verts)

	var shapes []geometry.Shape
	for _, corner := range fan(indexRange(len(verts))) {
		p := [3]core.Tuple{d.Vertices[verts[corner[0]]], d.Vertices[verts[corner[1]]], d.Vertices[verts[corner[2]]]}
		var n *[3]core.Tuple
		if smooth {
			n = &[3]core.Tuple{d.Normals[norms[corner[0]]], d.Normals[norms[corner[1]]], d.Normals[norms[corner[2]]]}
		}
		tri, ok := newFace(p, n)
		if !ok {
			d.Skipped++
			continue
		}
		shapes = append(shapes, tri)
	}
	return shapes, nil
}

// resolve converts a one-based index into a list of length n
func (d *OBJData) resolve(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad index %q", ErrInvalidFace, s)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("%w: index %d out of range 1..%d", ErrInvalidFace, i, n)
	}
	return i - 1, nil
}

func (d *OBJData) addFaces(group string, shapes []geometry.Shape) {
	if group == "" {
		d.Faces = append(d.Faces, shapes...)
		return
	}
	g, ok := d.Groups[group]
	if !ok {
		g = geometry.NewGroup()
		d.Groups[group] = g
		d.GroupOrder = append(d.GroupOrder, group)
	}
	g.AddChild(shapes...)
}

// ToGroup gathers everything into a single group: the ungrouped faces
// followed by one child group per named group. The shapes move into the new
// hierarchy, so call it once per load.
func (d *OBJData) ToGroup() *geometry.Group {
	root := geometry.NewGroup()
	root.AddChild(d.Faces...)
	for _, name := range d.GroupOrder {
		root.AddChild(d.Groups[name])
	}
	return root
}

func indexRange(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}
