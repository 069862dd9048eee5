package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// ErrInvalidScene is returned for a scene description that cannot be built
var ErrInvalidScene = errors.New("invalid scene")

// SceneDescription is a world and camera read from a scene file
type SceneDescription struct {
	Name        string
	Description string
	Group       string
	World       *world.World
	Camera      renderer.CameraConfig
}

// sceneJSON mirrors the file layout. Colors are [r, g, b] arrays or
// "#rrggbb" strings; transforms are lists of steps such as
// ["translate", 1, 2, 3] applied first to last.
type sceneJSON struct {
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	Group        string                  `json:"group"`
	Camera       *cameraJSON             `json:"camera"`
	Background   *colorJSON              `json:"background"`
	MaxRecursion *int                    `json:"maxRecursion"`
	Lights       []lightJSON             `json:"lights"`
	Materials    map[string]materialJSON `json:"materials"`
	Objects      []shapeJSON             `json:"objects"`
}

type cameraJSON struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	FieldOfView float64     `json:"fov"`
	From        *[3]float64 `json:"from"`
	To          *[3]float64 `json:"to"`
	Up          *[3]float64 `json:"up"`
}

type lightJSON struct {
	Position  [3]float64 `json:"position"`
	Intensity *colorJSON `json:"intensity"`
}

type materialJSON struct {
	Extends         string       `json:"extends"`
	Color           *colorJSON   `json:"color"`
	Pattern         *patternJSON `json:"pattern"`
	Ambient         *float64     `json:"ambient"`
	Diffuse         *float64     `json:"diffuse"`
	Specular        *float64     `json:"specular"`
	Shininess       *float64     `json:"shininess"`
	Reflective      *float64     `json:"reflective"`
	Transparency    *float64     `json:"transparency"`
	RefractiveIndex *float64     `json:"refractiveIndex"`
}

type patternJSON struct {
	Type      string        `json:"type"`
	Colors    []colorJSON   `json:"colors"`
	Patterns  []patternJSON `json:"patterns"`
	Bias      float64       `json:"bias"`
	Seed      int64         `json:"seed"`
	Transform transformJSON `json:"transform"`
}

type shapeJSON struct {
	Type      string          `json:"type"`
	Transform transformJSON   `json:"transform"`
	Material  json.RawMessage `json:"material"`

	// Cylinders and cones
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Closed bool     `json:"closed"`

	// Triangles
	Points  [][3]float64 `json:"points"`
	Normals [][3]float64 `json:"normals"`

	// Groups
	Children []shapeJSON `json:"children"`
	Optimize int         `json:"optimize"`

	// CSG
	Operation string     `json:"operation"`
	Left      *shapeJSON `json:"left"`
	Right     *shapeJSON `json:"right"`

	// Meshes
	File string `json:"file"`
}

// colorJSON accepts [r, g, b] in linear RGB or a "#rrggbb" sRGB hex string
type colorJSON core.Color

func (c *colorJSON) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		hex, err := colorful.Hex(s)
		if err != nil {
			return fmt.Errorf("color %q: %w", s, err)
		}
		r, g, b := hex.LinearRgb()
		*c = colorJSON(core.NewColor(r, g, b))
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be [r, g, b] or \"#rrggbb\": %w", err)
	}
	*c = colorJSON(core.NewColor(rgb[0], rgb[1], rgb[2]))
	return nil
}

// transformJSON is a list of transformation steps
type transformJSON [][]any

// matrix composes the steps so that the first one is applied first
func (t transformJSON) matrix() (core.Matrix, error) {
	steps := make([]core.Matrix, 0, len(t))
	for _, step := range t {
		if len(step) == 0 {
			return core.Matrix{}, fmt.Errorf("%w: empty transform step", ErrInvalidScene)
		}
		name, ok := step[0].(string)
		if !ok {
			return core.Matrix{}, fmt.Errorf("%w: transform step must start with a name, got %v", ErrInvalidScene, step[0])
		}
		args := make([]float64, len(step)-1)
		for i, a := range step[1:] {
			f, ok := a.(float64)
			if !ok {
				return core.Matrix{}, fmt.Errorf("%w: %s: argument %v is not a number", ErrInvalidScene, name, a)
			}
			args[i] = f
		}

		m, err := transformStep(name, args)
		if err != nil {
			return core.Matrix{}, err
		}
		steps = append(steps, m)
	}
	return core.Chain(steps...), nil
}

func transformStep(name string, args []float64) (core.Matrix, error) {
	want := map[string]int{
		"translate": 3, "scale": 3, "rotate-x": 1, "rotate-y": 1, "rotate-z": 1, "shear": 6,
	}
	n, ok := want[name]
	if !ok {
		return core.Matrix{}, fmt.Errorf("%w: unknown transform %q", ErrInvalidScene, name)
	}
	if len(args) != n {
		return core.Matrix{}, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidScene, name, n, len(args))
	}

	switch name {
	case "translate":
		return core.Translation(args[0], args[1], args[2]), nil
	case "scale":
		return core.Scaling(args[0], args[1], args[2]), nil
	case "rotate-x":
		return core.RotationX(args[0]), nil
	case "rotate-y":
		return core.RotationY(args[0]), nil
	case "rotate-z":
		return core.RotationZ(args[0]), nil
	default:
		return core.Shearing(args[0], args[1], args[2], args[3], args[4], args[5]), nil
	}
}

// LoadScene reads a JSON scene file. Mesh paths are resolved relative to
// the file.
func LoadScene(path string) (*SceneDescription, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseScene(file, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return desc, nil
}

// ParseScene decodes a JSON scene description and builds its world.
// baseDir is used to resolve mesh file references.
func ParseScene(r io.Reader, baseDir string) (*SceneDescription, error) {
	var src sceneJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	b := &sceneBuilder{src: &src, baseDir: baseDir, materials: make(map[string]*material.Material)}

	w := world.New()
	if src.Background != nil {
		w.Background = core.Color(*src.Background)
	}
	if src.MaxRecursion != nil {
		w.MaxRecursion = *src.MaxRecursion
	}

	for _, l := range src.Lights {
		intensity := core.White
		if l.Intensity != nil {
			intensity = core.Color(*l.Intensity)
		}
		w.AddLight(lights.NewPointLight(core.Point(l.Position[0], l.Position[1], l.Position[2]), intensity))
	}

	for i, o := range src.Objects {
		shape, err := b.shape(o, nil)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		w.AddObject(shape)
	}

	return &SceneDescription{
		Name:        src.Name,
		Description: src.Description,
		Group:       src.Group,
		World:       w,
		Camera:      cameraConfig(src.Camera),
	}, nil
}

// cameraConfig fills unset camera fields from the defaults
func cameraConfig(c *cameraJSON) renderer.CameraConfig {
	if c == nil {
		return renderer.DefaultCameraConfig()
	}
	override := renderer.CameraConfig{Width: c.Width, Height: c.Height, FieldOfView: c.FieldOfView}
	if c.From != nil {
		override.From = core.Point(c.From[0], c.From[1], c.From[2])
	}
	if c.To != nil {
		override.To = core.Point(c.To[0], c.To[1], c.To[2])
	}
	if c.Up != nil {
		override.Up = core.Vector(c.Up[0], c.Up[1], c.Up[2])
	}
	return renderer.MergeCameraConfig(renderer.DefaultCameraConfig(), override)
}

type sceneBuilder struct {
	src       *sceneJSON
	baseDir   string
	materials map[string]*material.Material
	resolving map[string]bool
}

// namedMaterial builds a material from the materials table, following
// extends chains
func (b *sceneBuilder) namedMaterial(name string) (*material.Material, error) {
	if m, ok := b.materials[name]; ok {
		return m, nil
	}
	def, ok := b.src.Materials[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown material %q", ErrInvalidScene, name)
	}
	if b.resolving == nil {
		b.resolving = make(map[string]bool)
	}
	if b.resolving[name] {
		return nil, fmt.Errorf("%w: material %q extends itself", ErrInvalidScene, name)
	}
	b.resolving[name] = true
	defer delete(b.resolving, name)

	m, err := b.material(def)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", name, err)
	}
	b.materials[name] = m
	return m, nil
}

func (b *sceneBuilder) material(def materialJSON) (*material.Material, error) {
	m := material.DefaultMaterial()
	if def.Extends != "" {
		base, err := b.namedMaterial(def.Extends)
		if err != nil {
			return nil, err
		}
		copied := *base
		m = &copied
	}

	if def.Color != nil {
		m.Color = core.Color(*def.Color)
	}
	if def.Pattern != nil {
		p, err := buildPattern(*def.Pattern)
		if err != nil {
			return nil, err
		}
		m.Pattern = p
	}
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{def.Ambient, &m.Ambient},
		{def.Diffuse, &m.Diffuse},
		{def.Specular, &m.Specular},
		{def.Shininess, &m.Shininess},
		{def.Reflective, &m.Reflective},
		{def.Transparency, &m.Transparency},
		{def.RefractiveIndex, &m.RefractiveIndex},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return m, nil
}

// shapeMaterial resolves a shape's material field: a name, an inline
// object, or nothing
func (b *sceneBuilder) shapeMaterial(raw json.RawMessage) (*material.Material, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] == '"' {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
		}
		return b.namedMaterial(name)
	}

	var def materialJSON
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("%w: material: %v", ErrInvalidScene, err)
	}
	return b.material(def)
}

func buildPattern(def patternJSON) (material.Pattern, error) {
	// Two-part patterns take either nested patterns or plain colors
	pair := func() (material.Pattern, material.Pattern, error) {
		if len(def.Patterns) == 2 {
			a, err := buildPattern(def.Patterns[0])
			if err != nil {
				return nil, nil, err
			}
			b, err := buildPattern(def.Patterns[1])
			if err != nil {
				return nil, nil, err
			}
			return a, b, nil
		}
		if len(def.Colors) == 2 {
			return material.NewSolid(core.Color(def.Colors[0])), material.NewSolid(core.Color(def.Colors[1])), nil
		}
		return nil, nil, fmt.Errorf("%w: %s pattern needs two colors or two patterns", ErrInvalidScene, def.Type)
	}

	var p interface {
		material.Pattern
		SetTransform(core.Matrix)
	}
	switch def.Type {
	case "solid":
		if len(def.Colors) != 1 {
			return nil, fmt.Errorf("%w: solid pattern needs one color", ErrInvalidScene)
		}
		p = material.NewSolid(core.Color(def.Colors[0]))
	case "gradient":
		if len(def.Colors) != 2 {
			return nil, fmt.Errorf("%w: gradient pattern needs two colors", ErrInvalidScene)
		}
		p = material.NewGradient(core.Color(def.Colors[0]), core.Color(def.Colors[1]))
	case "position":
		p = material.NewPosition()
	case "stripes", "rings", "checkers", "blend", "noise":
		a, bp, err := pair()
		if err != nil {
			return nil, err
		}
		switch def.Type {
		case "stripes":
			p = material.NewStripes(a, bp)
		case "rings":
			p = material.NewRings(a, bp)
		case "checkers":
			p = material.NewCheckers(a, bp)
		case "blend":
			p = material.NewBlend(a, bp, def.Bias)
		default:
			p = material.NewNoise(a, bp, def.Seed)
		}
	default:
		return nil, fmt.Errorf("%w: unknown pattern %q", ErrInvalidScene, def.Type)
	}

	m, err := def.Transform.matrix()
	if err != nil {
		return nil, err
	}
	if !m.IsInvertible() {
		return nil, fmt.Errorf("%w: pattern transform is singular", ErrInvalidScene)
	}
	p.SetTransform(m)
	return p, nil
}

// shape builds a shape and its children. Transforms are set before a shape
// is added to its parent so that group bounds come out right. Children of
// groups and CSG nodes without a material of their own use inherited.
func (b *sceneBuilder) shape(def shapeJSON, inherited *material.Material) (geometry.Shape, error) {
	mat, err := b.shapeMaterial(def.Material)
	if err != nil {
		return nil, err
	}
	if mat == nil {
		mat = inherited
	}

	var s geometry.Shape
	switch def.Type {
	case "sphere":
		s = geometry.NewSphere()
	case "glass-sphere":
		s = geometry.NewGlassSphere()
	case "plane":
		s = geometry.NewPlane()
	case "cube":
		s = geometry.NewCube()
	case "cylinder", "cone":
		lo, hi := bounds(def.Min, def.Max)
		if def.Type == "cylinder" {
			s = geometry.NewTruncatedCylinder(lo, hi, def.Closed)
		} else {
			s = geometry.NewTruncatedCone(lo, hi, def.Closed)
		}
	case "triangle":
		tri, err := triangleShape(def)
		if err != nil {
			return nil, err
		}
		s = tri
	case "group":
		g := geometry.NewGroup()
		for i, c := range def.Children {
			child, err := b.shape(c, mat)
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			g.AddChild(child)
		}
		s = g
	case "csg":
		if def.Left == nil || def.Right == nil {
			return nil, fmt.Errorf("%w: csg needs left and right", ErrInvalidScene)
		}
		op, err := geometry.ParseOperation(def.Operation)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
		}
		left, err := b.shape(*def.Left, mat)
		if err != nil {
			return nil, fmt.Errorf("left: %w", err)
		}
		right, err := b.shape(*def.Right, mat)
		if err != nil {
			return nil, fmt.Errorf("right: %w", err)
		}
		s = geometry.NewCSG(op, left, right)
	case "mesh":
		g, err := b.mesh(def.File)
		if err != nil {
			return nil, err
		}
		s = g
	default:
		return nil, fmt.Errorf("%w: unknown shape type %q", ErrInvalidScene, def.Type)
	}

	m, err := def.Transform.matrix()
	if err != nil {
		return nil, err
	}
	if !m.IsInvertible() {
		return nil, fmt.Errorf("%w: %s transform is singular", ErrInvalidScene, def.Type)
	}
	s.SetTransform(m)

	if mat != nil && (s.Kind() == geometry.KindPrimitive || def.Type == "mesh") {
		s.SetMaterial(mat)
	}

	if g, ok := s.(*geometry.Group); ok && def.Optimize > 0 {
		g.Optimize(def.Optimize, geometry.DefaultMaxDepth)
	}
	return s, nil
}

// bounds defaults missing cylinder and cone limits to infinity
func bounds(lo, hi *float64) (float64, float64) {
	l, h := math.Inf(-1), math.Inf(1)
	if lo != nil {
		l = *lo
	}
	if hi != nil {
		h = *hi
	}
	return l, h
}

func triangleShape(def shapeJSON) (geometry.Shape, error) {
	if len(def.Points) != 3 {
		return nil, fmt.Errorf("%w: triangle needs 3 points", ErrInvalidScene)
	}
	var p [3]core.Tuple
	for i, v := range def.Points {
		p[i] = core.Point(v[0], v[1], v[2])
	}

	var n *[3]core.Tuple
	switch len(def.Normals) {
	case 0:
	case 3:
		n = &[3]core.Tuple{}
		for i, v := range def.Normals {
			n[i] = core.Vector(v[0], v[1], v[2])
		}
	default:
		return nil, fmt.Errorf("%w: triangle normals need 3 vectors", ErrInvalidScene)
	}

	tri, ok := newFace(p, n)
	if !ok {
		return nil, fmt.Errorf("%w: triangle has no area", ErrInvalidScene)
	}
	return tri, nil
}

// mesh loads an OBJ, PLY or glTF file by extension
func (b *sceneBuilder) mesh(file string) (*geometry.Group, error) {
	if file == "" {
		return nil, fmt.Errorf("%w: mesh needs a file", ErrInvalidScene)
	}
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.baseDir, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		data, err := LoadOBJ(path)
		if err != nil {
			return nil, err
		}
		return data.ToGroup(), nil
	case ".ply":
		mesh, err := LoadPLY(path)
		if err != nil {
			return nil, err
		}
		g, _ := mesh.ToGroup()
		return g, nil
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: unsupported mesh format %q", ErrInvalidScene, filepath.Ext(path))
	}
}
